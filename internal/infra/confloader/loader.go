package confloader

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/envflat"
	"github.com/azimuth-cloud/configomatic/internal/core/loader"
	"github.com/azimuth-cloud/configomatic/internal/core/merge"
	"github.com/azimuth-cloud/configomatic/internal/core/model"
	"github.com/azimuth-cloud/configomatic/internal/telemetry/metric"
)

// Layer names used in logs and metrics.
const (
	LayerFile   = "file"
	LayerEnv    = "env"
	LayerValues = "values"
)

// Loader resolves configuration from a file, the environment and explicit
// values. A Loader holds no state between resolutions and may be used
// concurrently.
type Loader struct {
	settings Settings
	filePath string
	useFile  bool
	useEnv   bool
	values   map[string]any
	environ  func() []string
	logger   *slog.Logger
	metrics  *metric.Registry
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithConfigFile sets an explicit configuration file path. It takes
// precedence over the path environment variable and the default path, and
// must exist.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithPathEnvVar sets the environment variable holding the file path.
func WithPathEnvVar(name string) Option {
	return func(l *Loader) {
		l.settings.PathEnvVar = name
	}
}

// WithDefaultPath sets the default configuration file path.
func WithDefaultPath(path string) Option {
	return func(l *Loader) {
		l.settings.DefaultPath = path
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.settings.EnvPrefix = prefix
	}
}

// WithSettings applies s over the current settings.
func WithSettings(s Settings) Option {
	return func(l *Loader) {
		l.settings = l.settings.Override(s)
	}
}

// WithValues sets the explicit layer, which overrides every other source.
func WithValues(values map[string]any) Option {
	return func(l *Loader) {
		l.values = values
	}
}

// WithoutFile disables the file layer.
func WithoutFile() Option {
	return func(l *Loader) {
		l.useFile = false
	}
}

// WithoutEnv disables the environment layer. The environment is then not
// scanned at all.
func WithoutEnv() Option {
	return func(l *Loader) {
		l.useEnv = false
	}
}

// WithEnviron reads the environment from fn instead of the process. fn
// returns KEY=value entries as os.Environ does.
func WithEnviron(fn func() []string) Option {
	return func(l *Loader) {
		l.environ = fn
	}
}

// WithFileLoader replaces format dispatch for the file layer.
func WithFileLoader(fn func(path string) (map[string]any, error)) Option {
	return func(l *Loader) {
		l.settings.LoadFile = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics records resolutions in m.
func WithMetrics(m *metric.Registry) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader creates a new configuration loader with file and environment
// layers enabled.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		useFile: true,
		useEnv:  true,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Settings returns the effective settings.
func (l *Loader) Settings() Settings {
	return l.settings
}

// Path returns the configuration file path that would be used and where it
// came from. ok is false when the file layer is disabled or no path is
// configured.
func (l *Loader) Path() (path string, source PathSource, ok bool) {
	if !l.useFile {
		return "", "", false
	}
	if l.filePath != "" {
		return l.filePath, SourceArgument, true
	}
	if name := l.settings.PathEnvVar; name != "" {
		if v := l.lookupEnv(name); v != "" {
			return v, SourceEnvironment, true
		}
	}
	if l.settings.DefaultPath != "" {
		return l.settings.DefaultPath, SourceDefault, true
	}
	return "", "", false
}

func (l *Loader) lookupEnv(name string) string {
	if l.environ == nil {
		return os.Getenv(name)
	}
	for _, kv := range l.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v
		}
	}
	return ""
}

// Resolve returns the merged configuration: file, then environment, then
// explicit values. Errors from reading or parsing the file are returned
// unchanged.
func (l *Loader) Resolve() (map[string]any, error) {
	start := time.Now()
	out, err := l.resolve()
	l.metrics.Resolved(err, time.Since(start))
	if err != nil {
		l.logger.Debug("configuration resolution failed", "error", err)
		return nil, err
	}
	return out, nil
}

func (l *Loader) resolve() (map[string]any, error) {
	layers, err := l.layers()
	if err != nil {
		return nil, err
	}

	parts := make([]map[string]any, 0, len(layers))
	for _, ly := range layers {
		m, err := ly.provider.Read()
		if err != nil {
			return nil, err
		}
		l.metrics.LayerKeys(ly.name, len(m))
		l.logger.Debug("configuration layer read",
			"layer", ly.name,
			"keys", len(m),
		)
		parts = append(parts, m)
	}
	return merge.Merge(parts...), nil
}

// layers collects the enabled sources in precedence order.
func (l *Loader) layers() ([]layer, error) {
	var out []layer

	if p, err := l.fileLayer(); err != nil {
		return nil, err
	} else if p != nil {
		out = append(out, layer{name: LayerFile, provider: p})
	}

	if l.useEnv {
		var p koanf.Provider
		if l.environ != nil {
			p = envflat.NewSnapshotProvider(l.environ(), l.settings.EnvPrefix)
		} else {
			p = envflat.NewProvider(l.settings.EnvPrefix)
		}
		out = append(out, layer{name: LayerEnv, provider: p})
	}

	return append(out, layer{name: LayerValues, provider: mapProvider(l.values)}), nil
}

func (l *Loader) fileLayer() (koanf.Provider, error) {
	path, source, ok := l.Path()
	if !ok {
		return nil, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if source == SourceDefault {
			l.logger.Debug("default configuration file not found",
				"path", path,
			)
			return mapProvider(nil), nil
		}
		return nil, &FileNotFoundError{Path: path, Source: source, Err: err}
	}

	return &fileProvider{path: path, source: source, load: l.fileLoader()}, nil
}

func (l *Loader) fileLoader() func(string) (map[string]any, error) {
	if l.settings.LoadFile != nil {
		return l.settings.LoadFile
	}
	ld := loader.New(
		loader.WithLogger(l.logger),
		loader.WithObserver(func(_ string, f loader.Format) {
			l.metrics.FileLoaded(string(f))
		}),
	)
	return ld.LoadFile
}

// Load resolves the configuration and decodes it into target. Decoding and
// validation errors are returned unchanged.
func (l *Loader) Load(target any) error {
	m, err := l.Resolve()
	if err != nil {
		return err
	}
	return model.Decode(m, target)
}

// View resolves the configuration into a koanf instance for dotted-path
// access.
func (l *Loader) View() (*koanf.Koanf, error) {
	m, err := l.Resolve()
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(mapProvider(m), nil); err != nil {
		return nil, err
	}
	return k, nil
}
