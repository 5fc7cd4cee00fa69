package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/loader"
)

// LoadCommand returns the load command.
func LoadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Parse a single configuration file",
		ArgsUsage: "FILE",
		Description: "The format is chosen by the file suffix. YAML files may pull in\n" +
			"other files with !include.",
		Action: loadAction,
	}
}

func loadAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("configuration file path required")
	}

	values, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	return render(c, values)
}
