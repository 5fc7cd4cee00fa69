// Package main provides the entry point for configomatic.
//
// The CLI resolves configuration the same way applications using the
// library do:
//
//   - Merge a configuration file, PREFIX__A__B environment variables and
//     --set values, later sources overriding earlier ones
//   - Parse single JSON, YAML (with !include) or TOML files
//   - Watch configuration files and print the result whenever it changes
//
// Usage:
//
//	configomatic resolve -c app.yaml --prefix MYAPP
//	configomatic -o json get -c app.yaml database.host
//	configomatic watch -c app.yaml --metrics-addr :9090
//	configomatic formats
package main
