package config

import (
	"io"

	"github.com/azimuth-cloud/configomatic/internal/telemetry/logger"
)

// SetupLogging installs the CLI's logger. A logging section takes
// precedence over the simple log settings, which write to stderr and mask
// sensitive attributes. The returned function releases files opened by
// logging handlers.
func (c *CLIConfig) SetupLogging(stderr io.Writer) (func() error, error) {
	if len(c.Logging) > 0 {
		lc, err := logger.FromMap(c.Logging)
		if err != nil {
			return nil, err
		}
		m, err := lc.Apply(nil)
		if err != nil {
			return nil, err
		}
		return m.Close, nil
	}

	err := logger.Setup(logger.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: stderr,
		Redact: true,
	})
	if err != nil {
		return nil, err
	}
	return func() error { return nil }, nil
}
