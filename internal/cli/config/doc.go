// Package config holds the configuration of the configomatic CLI itself.
//
// The CLI resolves its own settings with the same assembler it exposes:
// ~/.config/configomatic/cli.yaml (optional), then CONFIGOMATIC_CLI__*
// environment variables, then command-line flags.
//
// Example cli.yaml:
//
//	output: json
//	log:
//	  level: debug
//	logging:
//	  loggers:
//	    configomatic.watch:
//	      level: DEBUG
package config
