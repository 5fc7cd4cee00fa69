package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/azimuth-cloud/configomatic/internal/cli/config"
	"github.com/azimuth-cloud/configomatic/internal/core/model"
	"github.com/azimuth-cloud/configomatic/internal/infra/confloader"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:  "cli",
				Usage: "CLI local configuration",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Show the effective CLI configuration",
						Action: configCLIShow,
					},
					{
						Name:   "validate",
						Usage:  "Validate the CLI configuration",
						Action: configCLIValidate,
					},
					{
						Name:   "path",
						Usage:  "Show which CLI configuration file is used",
						Action: configCLIPath,
					},
				},
			},
		},
	}
}

func configCLIShow(c *cli.Context) error {
	layer, err := model.Dump(GetCLIConfig(c), false)
	if err != nil {
		return err
	}
	return render(c, layer)
}

// configCLIValidate resolves the CLI configuration again so that problems
// are reported with the configuration file path.
func configCLIValidate(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	path, _, _ := cliLoader(flags).Path()

	if _, err := cliconfig.Load(flags.CLIConfig, nil); err != nil {
		return fmt.Errorf("invalid CLI configuration %s: %w", path, err)
	}

	fmt.Fprintf(c.App.Writer, "✓ CLI configuration is valid: %s\n", path)
	return nil
}

func configCLIPath(c *cli.Context) error {
	path, source, ok := cliLoader(ParseGlobalFlags(c)).Path()
	if !ok {
		return fmt.Errorf("no CLI configuration path")
	}
	return render(c, map[string]any{
		"path":   path,
		"source": string(source),
	})
}

func cliLoader(flags *GlobalFlags) *confloader.Loader {
	return confloader.NewLoader(
		confloader.WithSettings(cliconfig.Settings()),
		confloader.WithConfigFile(flags.CLIConfig),
	)
}
