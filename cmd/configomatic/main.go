// Package main provides the entry point for configomatic.
//
// configomatic resolves layered configuration from a file, the
// environment and command-line values.
package main

import (
	"os"

	"github.com/azimuth-cloud/configomatic/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
