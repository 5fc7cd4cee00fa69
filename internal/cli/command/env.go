package command

import (
	"github.com/urfave/cli/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/envflat"
)

// EnvCommand returns the env command.
func EnvCommand() *cli.Command {
	return &cli.Command{
		Name:  "env",
		Usage: "Print the configuration layer built from the environment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only read environment variables named PREFIX__...",
			},
		},
		Action: envAction,
	}
}

func envAction(c *cli.Context) error {
	values, err := envflat.NewProvider(c.String("prefix")).Read()
	if err != nil {
		return err
	}
	return render(c, values)
}
