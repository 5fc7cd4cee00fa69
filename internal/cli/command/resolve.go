package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/azimuth-cloud/configomatic/internal/infra/confloader"
	"github.com/azimuth-cloud/configomatic/internal/telemetry/logger"
)

// ResolveCommand returns the resolve command.
func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve and print the merged configuration",
		Description: "Merges the configuration file, the environment and --set values,\n" +
			"later sources overriding earlier ones key by key.",
		Flags: append(loaderFlags(),
			&cli.BoolFlag{
				Name:  "redact",
				Usage: "Mask values of sensitive keys such as passwords and tokens",
			},
		),
		Action: resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	opts, err := loaderOptions(c)
	if err != nil {
		return err
	}

	values, err := confloader.NewLoader(opts...).Resolve()
	if err != nil {
		return err
	}
	if c.Bool("redact") {
		values = logger.RedactLayer(values)
	}
	return render(c, values)
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Resolve the configuration and print one value",
		ArgsUsage: "KEY",
		Flags:     loaderFlags(),
		Action:    getAction,
	}
}

func getAction(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("key required (e.g., database.host)")
	}

	opts, err := loaderOptions(c)
	if err != nil {
		return err
	}

	k, err := confloader.NewLoader(opts...).View()
	if err != nil {
		return err
	}
	if !k.Exists(key) {
		return fmt.Errorf("key not found: %s", key)
	}
	return render(c, k.Get(key))
}
