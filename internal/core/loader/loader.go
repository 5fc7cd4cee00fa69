package loader

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/file"
)

// Loader loads configuration files through a Registry.
type Loader struct {
	registry *Registry
	observer func(path string, format Format)
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the format registry.
func WithRegistry(r *Registry) Option {
	return func(ld *Loader) {
		ld.registry = r
	}
}

// WithObserver registers a function called after every file, including
// included files, is loaded successfully.
func WithObserver(fn func(path string, format Format)) Option {
	return func(ld *Loader) {
		ld.observer = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ld *Loader) {
		ld.logger = logger
	}
}

// New creates a Loader using the default registry.
func New(opts ...Option) *Loader {
	ld := &Loader{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

var defaultLoader = New()

// LoadFile loads path with the default loader.
func LoadFile(path string) (map[string]any, error) {
	return defaultLoader.LoadFile(path)
}

// Registry returns the loader's registry.
func (ld *Loader) Registry() *Registry {
	return ld.registry
}

// LoadFile parses the file at path into a layer. An empty document yields an
// empty mapping. Read and parse errors are returned as produced by the
// operating system and the format parser.
func (ld *Loader) LoadFile(path string) (map[string]any, error) {
	return ld.load(path, nil)
}

func (ld *Loader) load(path string, chain []string) (map[string]any, error) {
	suffix := filepath.Ext(path)
	h, ok := ld.registry.Lookup(suffix)
	if !ok {
		return nil, &NoSuitableLoaderError{Suffix: suffix}
	}
	if !h.Available || h.parser == nil {
		return nil, &RequiredPackageNotAvailableError{Format: h.Format, Library: h.Library}
	}

	canon := canonical(path)
	if slices.Contains(chain, canon) {
		return nil, &IncludeCycleError{Chain: append(slices.Clone(chain), canon)}
	}
	chain = append(slices.Clone(chain), canon)

	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, err
	}

	out, err := h.parser(ld, path, chain).Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make(map[string]any)
	}
	maps.IntfaceKeysToStrings(out)

	ld.logger.Debug("configuration file loaded",
		"path", path,
		"format", h.Format,
		"keys", len(out),
	)
	if ld.observer != nil {
		ld.observer(path, h.Format)
	}
	return out, nil
}

// canonical returns the absolute, symlink-free form of path. When the path
// cannot be resolved the absolute form is used.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
