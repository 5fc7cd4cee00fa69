// Package command provides the configomatic command definitions.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, CLI settings
//   - flags.go: Flags shared by commands that resolve configuration
//   - resolve.go: resolve and get
//   - load.go: Parse a single file
//   - env.go: Print the environment layer
//   - formats.go: Print the supported file formats
//   - watch.go: Resolve again whenever a configuration file changes
//   - config.go: Inspect the CLI's own configuration
//   - version.go: Build information
//
// Commands parse their flags, run the matching core operation and write
// the result to the application writer in the selected output format.
package command
