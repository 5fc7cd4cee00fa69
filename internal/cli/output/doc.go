// Package output renders command results for the configomatic CLI.
//
// Configuration mappings can be printed as JSON, YAML, TOML or as a table
// of dotted key paths. Other results (format lists, version information)
// use the same formatters.
package output
