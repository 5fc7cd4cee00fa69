package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/azimuth-cloud/configomatic/internal/cli/config"
	"github.com/azimuth-cloud/configomatic/internal/cli/output"
	"github.com/azimuth-cloud/configomatic/internal/infra/buildinfo"
)

// Metadata keys set by the Before hook.
const (
	metaConfig       = "cliConfig"
	metaCloseLogging = "closeLogging"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "configomatic",
		Usage:   "Resolve layered configuration from files, the environment and flags",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ResolveCommand(),
			GetCommand(),
			LoadCommand(),
			EnvCommand(),
			FormatsCommand(),
			WatchCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		// --set values may contain commas.
		DisableSliceFlagSeparator: true,
		Before:                    before,
		After:                     after,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: json, yaml, toml, table",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: line, text, json",
		},
		&cli.StringFlag{
			Name:    "cli-config",
			Usage:   "Path of the CLI configuration file",
			EnvVars: []string{cliconfig.PathEnvVar},
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Output    string
	LogLevel  string
	LogFormat string
	CLIConfig string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Output:    c.String("output"),
		LogLevel:  c.String("log-level"),
		LogFormat: c.String("log-format"),
		CLIConfig: c.String("cli-config"),
	}
}

// Overrides returns the flags that were set as a layer over the CLI
// configuration.
func (g *GlobalFlags) Overrides() map[string]any {
	out := make(map[string]any)
	if g.Output != "" {
		out["output"] = g.Output
	}
	log := make(map[string]any)
	if g.LogLevel != "" {
		log["level"] = g.LogLevel
	}
	if g.LogFormat != "" {
		log["format"] = g.LogFormat
	}
	if len(log) > 0 {
		out["log"] = log
	}
	return out
}

func before(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	cfg, err := cliconfig.Load(flags.CLIConfig, flags.Overrides())
	if err != nil {
		return fmt.Errorf("cli configuration: %w", err)
	}

	closeLogging, err := cfg.SetupLogging(c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("cli logging: %w", err)
	}

	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaCloseLogging] = closeLogging
	return nil
}

func after(c *cli.Context) error {
	if closeLogging, ok := c.App.Metadata[metaCloseLogging].(func() error); ok {
		return closeLogging()
	}
	return nil
}

// GetCLIConfig retrieves the CLI configuration from context.
func GetCLIConfig(c *cli.Context) *cliconfig.CLIConfig {
	if cfg, ok := c.App.Metadata[metaConfig].(*cliconfig.CLIConfig); ok {
		return cfg
	}
	return cliconfig.Default()
}

// render writes data to the application writer in the configured format.
func render(c *cli.Context, data any) error {
	format := output.Format(GetCLIConfig(c).Output)
	return output.NewFormatter(format).Format(c.App.Writer, data)
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}
