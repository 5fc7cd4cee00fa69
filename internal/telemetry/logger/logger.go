package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Config describes a logger writing to a single output.
type Config struct {
	// Level is the minimum level, as accepted by ParseLevel.
	Level string
	// Format is json, text or line.
	Format string
	// Output defaults to os.Stderr.
	Output    io.Writer
	AddSource bool
	// Redact masks string attributes under sensitive keys such as
	// password or api_key.
	Redact bool
}

// DefaultConfig logs text at info level to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text", Output: os.Stderr}
}

// NewHandler builds the handler for cfg at the given level. A nil level
// uses cfg.Level.
func NewHandler(cfg Config, level slog.Leveler) slog.Handler {
	if level == nil {
		level = parseLevel(cfg.Level)
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}
	if cfg.Redact {
		opts.ReplaceAttr = redactAttr
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.NewJSONHandler(out, opts)
	case "line":
		return NewLineHandler(out, DefaultLineFormat, opts)
	default:
		return slog.NewTextHandler(out, opts)
	}
}

// New returns a standalone logger for cfg. It does not change the
// process-wide loggers; see Setup for that.
func New(cfg Config) (*slog.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return slog.New(NewHandler(cfg, lvl)), nil
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	return redactSensitive(a)
}

type baseHandler struct{ slog.Handler }

var (
	level = new(slog.LevelVar)
	base  atomic.Pointer[baseHandler]
)

func init() {
	base.Store(&baseHandler{NewHandler(DefaultConfig(), level)})
}

// Setup sends every named logger and the slog default to a handler built
// from cfg. It replaces a configuration installed by Config.Apply.
func Setup(cfg Config) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	level.Set(lvl)
	base.Store(&baseHandler{NewHandler(cfg, level)})
	activate(nil)
	return nil
}

func parseLevel(name string) slog.Level {
	lvl, err := ParseLevel(name)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}
