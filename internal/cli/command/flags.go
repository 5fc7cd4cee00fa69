package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/azimuth-cloud/configomatic/internal/core/merge"
	"github.com/azimuth-cloud/configomatic/internal/infra/confloader"
)

// loaderFlags returns the flags of commands that resolve configuration.
func loaderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file; it must exist",
		},
		&cli.StringFlag{
			Name:  "path-env",
			Usage: "Environment variable that may hold the configuration file path",
		},
		&cli.StringFlag{
			Name:  "default-path",
			Usage: "Configuration file used when no other path is given; it may be missing",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Only read environment variables named PREFIX__...",
		},
		&cli.BoolFlag{
			Name:  "no-file",
			Usage: "Skip the configuration file",
		},
		&cli.BoolFlag{
			Name:  "no-env",
			Usage: "Skip the environment",
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "Set key.path=value over every other source (repeatable)",
		},
	}
}

// loaderOptions builds assembler options from the loader flags.
func loaderOptions(c *cli.Context) ([]confloader.Option, error) {
	values, err := parseSets(c.StringSlice("set"))
	if err != nil {
		return nil, err
	}

	opts := []confloader.Option{
		confloader.WithConfigFile(c.String("config")),
		confloader.WithSettings(confloader.Settings{
			PathEnvVar:  c.String("path-env"),
			DefaultPath: c.String("default-path"),
			EnvPrefix:   c.String("prefix"),
		}),
		confloader.WithValues(values),
	}
	if c.Bool("no-file") {
		opts = append(opts, confloader.WithoutFile())
	}
	if c.Bool("no-env") {
		opts = append(opts, confloader.WithoutEnv())
	}
	return opts, nil
}

// parseSets turns key.path=value assignments into a layer. Values are
// read as YAML scalars or flow collections, so "8080" is a number and
// "[a, b]" a sequence; anything unparsable stays a string.
func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key.path=value", s)
		}
		path := strings.Split(key, ".")
		for _, p := range path {
			if p == "" {
				return nil, fmt.Errorf("invalid --set %q: empty key segment", s)
			}
		}
		merge.Set(out, parseValue(raw), path...)
	}
	return out, nil
}

func parseValue(raw string) any {
	if raw == "" {
		return ""
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	if _, ok := v.(map[any]any); ok {
		return raw
	}
	return v
}
