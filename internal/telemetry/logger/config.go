package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/azimuth-cloud/configomatic/internal/core/merge"
	"github.com/azimuth-cloud/configomatic/internal/core/model"
)

// Configuration describes formatters, filters, handlers and named loggers.
// Entries are referenced by name; the root logger is named "".
type Configuration struct {
	Version                int                        `config:"version"`
	DisableExistingLoggers bool                       `config:"disable_existing_loggers"`
	Formatters             map[string]FormatterConfig `config:"formatters"`
	Filters                map[string]FilterConfig    `config:"filters"`
	Handlers               map[string]HandlerConfig   `config:"handlers"`
	Loggers                map[string]LoggerConfig    `config:"loggers"`
}

// FormatterConfig selects an output encoding. Kind is "line" (default),
// "json" or "text"; Format is the line template.
type FormatterConfig struct {
	Kind   string `config:"kind"`
	Format string `config:"format"`
}

// FilterConfig describes a record filter. The only kind is "less_than".
type FilterConfig struct {
	Kind  string `config:"kind"`
	Level string `config:"level"`
}

// HandlerConfig describes an output. Kind is "stream" (Stream is stdout or
// stderr) or "file" (Filename, opened for append unless Mode is "w").
type HandlerConfig struct {
	Kind      string   `config:"kind"`
	Stream    string   `config:"stream"`
	Filename  string   `config:"filename"`
	Mode      string   `config:"mode"`
	Formatter string   `config:"formatter"`
	Level     string   `config:"level"`
	Filters   []string `config:"filters"`
	// Redact masks string attributes under sensitive keys. Off by default,
	// so that {extra} shows every attribute as written.
	Redact bool `config:"redact"`
}

// LoggerConfig configures a named logger. A nil Propagate means true.
type LoggerConfig struct {
	Handlers  []string `config:"handlers"`
	Level     string   `config:"level"`
	Propagate *bool    `config:"propagate"`
}

// Sections holding named entries.
var sections = []string{"formatters", "filters", "handlers", "loggers"}

// DefaultLayer returns the default logging configuration as a layer:
// records below WARNING go to stdout, the rest to stderr, both through the
// "default" line formatter, with the root logger at INFO.
func DefaultLayer() map[string]any {
	return map[string]any{
		"version":                  1,
		"disable_existing_loggers": false,
		"formatters": map[string]any{
			"default": map[string]any{
				"kind":   "line",
				"format": DefaultLineFormat,
			},
		},
		"filters": map[string]any{
			"less_than_warning": map[string]any{
				"kind":  "less_than",
				"level": "WARNING",
			},
		},
		"handlers": map[string]any{
			"stdout": map[string]any{
				"kind":      "stream",
				"stream":    "stdout",
				"formatter": "default",
				"filters":   []any{"less_than_warning"},
			},
			"stderr": map[string]any{
				"kind":      "stream",
				"stream":    "stderr",
				"formatter": "default",
				"level":     "WARNING",
			},
		},
		"loggers": map[string]any{
			"": map[string]any{
				"handlers":  []any{"stdout", "stderr"},
				"level":     "INFO",
				"propagate": true,
			},
		},
	}
}

// DefaultConfiguration returns the default logging configuration.
func DefaultConfiguration() Configuration {
	c, _ := FromMap(nil)
	return c
}

// FromMap decodes a logging configuration layer. Named entries supplied in
// m are added to the defaults; an entry with a default's name replaces it.
func FromMap(m map[string]any) (Configuration, error) {
	layer := DefaultLayer()
	for k, v := range m {
		user, isMap := v.(map[string]any)
		defaults, isSection := layer[k].(map[string]any)
		if isSection && isMap {
			for name, entry := range user {
				defaults[name] = entry
			}
			continue
		}
		layer[k] = v
	}

	var c Configuration
	if err := model.Decode(layer, &c); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Layer returns c as a configuration layer, the inverse of FromMap.
func (c Configuration) Layer() (map[string]any, error) {
	out := map[string]any{
		"version":                  c.Version,
		"disable_existing_loggers": c.DisableExistingLoggers,
	}
	var err error
	if out["formatters"], err = dumpEntries(c.Formatters); err != nil {
		return nil, err
	}
	if out["filters"], err = dumpEntries(c.Filters); err != nil {
		return nil, err
	}
	if out["handlers"], err = dumpEntries(c.Handlers); err != nil {
		return nil, err
	}
	if out["loggers"], err = dumpEntries(c.Loggers); err != nil {
		return nil, err
	}
	return out, nil
}

func dumpEntries[T any](entries map[string]T) (map[string]any, error) {
	out := make(map[string]any, len(entries))
	for name, e := range entries {
		m, err := model.Dump(e, false)
		if err != nil {
			return nil, err
		}
		out[name] = m
	}
	return out, nil
}

// Apply deep-merges overrides onto c, builds the handlers and loggers it
// describes and installs the root logger as the slog default. Loggers
// obtained from Named follow the most recently applied configuration.
func (c Configuration) Apply(overrides map[string]any) (*Manager, error) {
	cfg := c
	if len(overrides) > 0 {
		layer, err := c.Layer()
		if err != nil {
			return nil, err
		}
		if err := model.Decode(merge.Merge(layer, overrides), &cfg); err != nil {
			return nil, err
		}
	}

	m, err := cfg.build()
	if err != nil {
		return nil, err
	}
	activate(m)
	return m, nil
}

// levelNotSet lets every record through a handler without a level.
const levelNotSet = slog.Level(math.MinInt32)

func (c Configuration) build() (*Manager, error) {
	if c.Version != 1 {
		return nil, fmt.Errorf("logging: unsupported configuration version %d", c.Version)
	}

	m := &Manager{nodes: make(map[string]*loggerNode)}
	handlers := make(map[string]slog.Handler, len(c.Handlers))
	for name, hc := range c.Handlers {
		h, closer, err := c.buildHandler(name, hc)
		if err != nil {
			m.Close()
			return nil, err
		}
		if closer != nil {
			m.closers = append(m.closers, closer)
		}
		handlers[name] = h
	}

	for name, lc := range c.Loggers {
		node := &loggerNode{propagate: lc.Propagate == nil || *lc.Propagate}
		if lc.Level != "" {
			lvl, err := ParseLevel(lc.Level)
			if err != nil {
				m.Close()
				return nil, fmt.Errorf("logger %q: %w", name, err)
			}
			node.level, node.levelSet = lvl, true
		}
		for _, hn := range lc.Handlers {
			h, ok := handlers[hn]
			if !ok {
				m.Close()
				return nil, fmt.Errorf("logger %q: unknown handler %q", name, hn)
			}
			node.handlers = append(node.handlers, h)
		}
		m.nodes[name] = node
	}

	if c.DisableExistingLoggers {
		m.disabled = make(map[string]bool)
		for _, name := range requestedNames() {
			if !m.configuredBranch(name) {
				m.disabled[name] = true
			}
		}
	}
	return m, nil
}

func (c Configuration) buildHandler(name string, hc HandlerConfig) (slog.Handler, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch hc.Kind {
	case "stream", "":
		switch strings.TrimPrefix(hc.Stream, "ext://sys.") {
		case "stdout":
			w = os.Stdout
		case "stderr", "":
			w = os.Stderr
		default:
			return nil, nil, fmt.Errorf("handler %q: unknown stream %q", name, hc.Stream)
		}
	case "file":
		if hc.Filename == "" {
			return nil, nil, fmt.Errorf("handler %q: filename is required", name)
		}
		flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
		if hc.Mode == "w" {
			flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		}
		f, err := os.OpenFile(hc.Filename, flags, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("handler %q: %w", name, err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("handler %q: unknown kind %q", name, hc.Kind)
	}

	fail := func(err error) (slog.Handler, io.Closer, error) {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, err
	}

	level := levelNotSet
	if hc.Level != "" {
		lvl, err := ParseLevel(hc.Level)
		if err != nil {
			return fail(fmt.Errorf("handler %q: %w", name, err))
		}
		level = lvl
	}
	opts := &slog.HandlerOptions{Level: level}
	if hc.Redact {
		opts.ReplaceAttr = redactAttr
	}

	fc := FormatterConfig{Kind: "line", Format: DefaultLineFormat}
	if hc.Formatter != "" {
		var ok bool
		if fc, ok = c.Formatters[hc.Formatter]; !ok {
			return fail(fmt.Errorf("handler %q: unknown formatter %q", name, hc.Formatter))
		}
	}

	var h slog.Handler
	switch fc.Kind {
	case "line", "":
		format := fc.Format
		if format == "" {
			format = DefaultLineFormat
		}
		h = NewLineHandler(w, format, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return fail(fmt.Errorf("formatter %q: unknown kind %q", hc.Formatter, fc.Kind))
	}

	if len(hc.Filters) > 0 {
		filters := make([]Filter, 0, len(hc.Filters))
		for _, fn := range hc.Filters {
			fcfg, ok := c.Filters[fn]
			if !ok {
				return fail(fmt.Errorf("handler %q: unknown filter %q", name, fn))
			}
			f, err := newFilter(fn, fcfg)
			if err != nil {
				return fail(err)
			}
			filters = append(filters, f)
		}
		h = NewFilterHandler(h, filters...)
	}
	return h, closer, nil
}

// Manager holds the loggers built by Apply.
type Manager struct {
	nodes    map[string]*loggerNode
	disabled map[string]bool
	closers  []io.Closer
}

type loggerNode struct {
	level     slog.Level
	levelSet  bool
	handlers  []slog.Handler
	propagate bool
}

// Logger returns the named logger. It is equivalent to Named while m is
// the active configuration.
func (m *Manager) Logger(name string) *slog.Logger {
	return slog.New(&treeHandler{name: name, manager: m})
}

// Close releases files opened by file handlers.
func (m *Manager) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// parentName returns the parent logger name: "a.b" -> "a" -> "".
func parentName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// effectiveLevel is the level of the nearest configured logger with one.
func (m *Manager) effectiveLevel(name string) slog.Level {
	for {
		if n, ok := m.nodes[name]; ok && n.levelSet {
			return n.level
		}
		if name == "" {
			return slog.LevelWarn
		}
		name = parentName(name)
	}
}

// handlersFor collects handlers from name up through its ancestors until a
// logger that does not propagate.
func (m *Manager) handlersFor(name string) []slog.Handler {
	var out []slog.Handler
	for {
		n, ok := m.nodes[name]
		if ok {
			out = append(out, n.handlers...)
			if !n.propagate {
				return out
			}
		}
		if name == "" {
			return out
		}
		name = parentName(name)
	}
}

// configuredBranch reports whether name or one of its non-root ancestors
// is configured.
func (m *Manager) configuredBranch(name string) bool {
	for name != "" {
		if _, ok := m.nodes[name]; ok {
			return true
		}
		name = parentName(name)
	}
	return false
}
