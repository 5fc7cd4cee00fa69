package config

import (
	"os"
	"path/filepath"

	"github.com/azimuth-cloud/configomatic/internal/infra/confloader"
)

const (
	// EnvPrefix is the prefix of environment variables configuring the CLI.
	EnvPrefix = "CONFIGOMATIC_CLI"
	// PathEnvVar may hold the path of the CLI configuration file.
	PathEnvVar = "CONFIGOMATIC_CLI_CONFIG"
)

// CLIConfig is the configuration for the configomatic CLI.
type CLIConfig struct {
	// Output is the default output format.
	Output string `config:"output" validate:"oneof=json yaml toml table"`

	Log LogConfig `config:"log"`

	// Logging is a full logging configuration (formatters, filters,
	// handlers, loggers). When set it replaces Log.
	Logging map[string]any `config:"logging"`
}

// LogConfig configures the simple stderr logger.
type LogConfig struct {
	Level  string `config:"level" validate:"oneof=debug info warn warning error"`
	Format string `config:"format" validate:"oneof=text json line"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Output: "yaml",
		Log: LogConfig{
			Level:  "warn",
			Format: "line",
		},
	}
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "configomatic", "cli.yaml")
}

// Settings returns the assembler settings of the CLI configuration.
func Settings() confloader.Settings {
	return confloader.Settings{
		PathEnvVar:  PathEnvVar,
		DefaultPath: DefaultConfigPath(),
		EnvPrefix:   EnvPrefix,
	}
}

// Load resolves the CLI configuration. path, when not empty, must exist.
// overrides are applied last, typically the values of command-line flags.
// Unset keys keep their defaults.
func Load(path string, overrides map[string]any, opts ...confloader.Option) (*CLIConfig, error) {
	cfg := Default()
	opts = append([]confloader.Option{
		confloader.WithSettings(Settings()),
		confloader.WithConfigFile(path),
		confloader.WithValues(overrides),
	}, opts...)
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
