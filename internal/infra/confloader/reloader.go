package confloader

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/azimuth-cloud/configomatic/internal/core/loader"
)

// DefaultReloadInterval is the minimum time between two resolutions
// triggered by file changes.
const DefaultReloadInterval = 250 * time.Millisecond

// Reload is the outcome of one resolution run by a Reloader.
type Reload struct {
	// Trigger is the changed path, or empty for the initial resolution.
	Trigger string
	Values  map[string]any
	Err     error
}

// Reloader resolves a Loader again whenever a watched configuration file
// changes. Bursts of changes are coalesced and resolutions are spaced by
// a rate limiter.
type Reloader struct {
	loader   *Loader
	onReload func(Reload)
	paths    []string
	interval time.Duration
	registry *loader.Registry
	logger   *slog.Logger
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithReloadInterval sets the minimum time between resolutions.
func WithReloadInterval(d time.Duration) ReloaderOption {
	return func(r *Reloader) {
		r.interval = d
	}
}

// WithWatchPaths watches the directories of paths in addition to the
// loader's configuration file, for example directories of included files.
func WithWatchPaths(paths ...string) ReloaderOption {
	return func(r *Reloader) {
		r.paths = append(r.paths, paths...)
	}
}

// WithReloaderRegistry sets the registry deciding which file suffixes
// trigger a reload.
func WithReloaderRegistry(reg *loader.Registry) ReloaderOption {
	return func(r *Reloader) {
		r.registry = reg
	}
}

// WithReloaderLogger sets the logger.
func WithReloaderLogger(logger *slog.Logger) ReloaderOption {
	return func(r *Reloader) {
		r.logger = logger
	}
}

// NewReloader creates a Reloader delivering every resolution to onReload.
func NewReloader(l *Loader, onReload func(Reload), opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		loader:   l,
		onReload: onReload,
		interval: DefaultReloadInterval,
		registry: loader.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if path, _, ok := l.Path(); ok {
		r.paths = append([]string{path}, r.paths...)
	}
	return r
}

// Paths returns the paths whose directories are watched.
func (r *Reloader) Paths() []string {
	return r.paths
}

// Run delivers an initial resolution, then one per change until ctx is
// done. It returns an error only if watching cannot be set up.
func (r *Reloader) Run(ctx context.Context) error {
	w, err := NewWatcher(
		WithWatcherLogger(r.logger),
		WithWatcherFilter(r.isConfigFile),
	)
	if err != nil {
		return err
	}
	defer w.Stop()

	for _, p := range r.paths {
		if err := w.Watch(p); err != nil {
			return err
		}
	}

	// One pending trigger is enough: the resolution it causes sees every
	// change made before it runs.
	pending := make(chan string, 1)
	w.OnChange(func(path string) {
		select {
		case pending <- path:
		default:
		}
	})
	w.StartAsync()

	r.reload(ctx, "")

	limiter := rate.NewLimiter(rate.Every(r.interval), 1)
	// The initial resolution consumes the first token.
	limiter.Allow()
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-pending:
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			r.reload(ctx, path)
		}
	}
}

func (r *Reloader) reload(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	values, err := r.loader.Resolve()
	if err != nil {
		r.logger.Warn("configuration reload failed",
			"trigger", trigger,
			"error", err,
		)
	}
	r.onReload(Reload{Trigger: trigger, Values: values, Err: err})
}

// isConfigFile reports whether path has a suffix some format handles.
func (r *Reloader) isConfigFile(path string) bool {
	_, ok := r.registry.Lookup(filepath.Ext(path))
	return ok
}
