package confloader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to configuration files. It watches directories
// rather than files, so that editors replacing a file by rename are seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	filter func(string) bool
	logger *slog.Logger

	mu        sync.RWMutex
	callbacks []func(string)
	dirs      map[string]struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithWatcherFilter restricts notifications to paths for which keep
// returns true.
func WithWatcherFilter(keep func(path string) bool) WatcherOption {
	return func(w *Watcher) {
		w.filter = keep
	}
}

// NewWatcher creates a Watcher. Nothing is reported until Start runs.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		fs:     fw,
		logger: slog.Default(),
		dirs:   make(map[string]struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds the directory containing path. Adding a directory twice is a
// no-op.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dirs[dir] = struct{}{}

	w.logger.Debug("watching configuration directory",
		"dir", dir,
		"file", filepath.Base(path),
	)
	return nil
}

// OnChange registers fn to receive the path of every reported change.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, fn)
	w.mu.Unlock()
}

// Start dispatches events until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("configuration watcher error", "error", err)
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.dispatch(ev)
		}
	}
}

// StartAsync runs Start in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

func (w *Watcher) dispatch(ev fsnotify.Event) {
	if !relevant(ev) {
		return
	}
	if w.filter != nil && !w.filter(ev.Name) {
		return
	}
	w.logger.Debug("configuration file changed",
		"file", ev.Name,
		"op", ev.Op.String(),
	)
	w.notifyCallbacks(ev.Name)
}

// relevant reports whether ev may change what is read at its path. A file
// that disappears counts as a change.
func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) ||
		ev.Has(fsnotify.Rename)
}

// Stop stops the Watcher and releases its resources. Later calls return
// nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) notifyCallbacks(path string) {
	w.mu.RLock()
	cbs := w.callbacks
	w.mu.RUnlock()
	for _, cb := range cbs {
		cb(path)
	}
}
