package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Handler runs cleanup hooks when a long-running command stops.
type Handler struct {
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []func(context.Context) error

	once sync.Once
	err  error
}

// NewHandler creates a Handler whose hooks share a deadline of timeout.
// Without signals it reacts to SIGINT and SIGTERM.
func NewHandler(timeout time.Duration, signals ...os.Signal) *Handler {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	return &Handler{timeout: timeout, signals: signals}
}

// OnShutdown registers hook. Hooks run newest first, so a server started
// after its dependencies is stopped before them.
func (h *Handler) OnShutdown(hook func(context.Context) error) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook)
	h.mu.Unlock()
}

// Context returns a context cancelled when parent is done or one of the
// handler's signals arrives. stop releases the signal registration.
func (h *Handler) Context(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, h.signals...)
}

// Shutdown runs the hooks once and returns their joined errors. Later
// calls return the same result.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := h.hooks
		h.hooks = nil
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			errs = append(errs, hooks[i](ctx))
		}
		h.err = errors.Join(errs...)
	})
	return h.err
}
