package logger

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

var (
	active atomic.Pointer[Manager]

	requestedMu sync.Mutex
	requested   = make(map[string]struct{})
)

func activate(m *Manager) {
	active.Store(m)
	slog.SetDefault(slog.New(&treeHandler{name: ""}))
}

// Named returns the logger called name. Dots separate levels of the
// hierarchy: records from "app.db" also reach the handlers of "app" and of
// the root logger unless propagation is switched off. While no Manager is
// active, records go to the handler installed by Setup, which defaults to
// text on stderr.
func Named(name string) *slog.Logger {
	requestedMu.Lock()
	requested[name] = struct{}{}
	requestedMu.Unlock()
	return slog.New(&treeHandler{name: name})
}

func requestedNames() []string {
	requestedMu.Lock()
	defer requestedMu.Unlock()
	names := make([]string, 0, len(requested))
	for n := range requested {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// fallback is the handler used while no Manager is active.
func fallback() slog.Handler {
	return base.Load().Handler
}

type handlerOp struct {
	attrs []slog.Attr
	group string
}

// treeHandler routes records of one named logger to the handlers of the
// manager, following propagation. A nil manager means the active one.
type treeHandler struct {
	name    string
	manager *Manager
	ops     []handlerOp
}

func (h *treeHandler) current() *Manager {
	if h.manager != nil {
		return h.manager
	}
	return active.Load()
}

func (h *treeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	m := h.current()
	if m == nil {
		return fallback().Enabled(ctx, level)
	}
	if m.disabled[h.name] {
		return false
	}
	return level >= m.effectiveLevel(h.name)
}

func (h *treeHandler) Handle(ctx context.Context, r slog.Record) error {
	m := h.current()
	if m == nil {
		return h.apply(fallback()).Handle(ctx, r)
	}
	if m.disabled[h.name] {
		return nil
	}

	ctx = withLoggerName(ctx, h.name)
	var first error
	for _, target := range m.handlersFor(h.name) {
		if !target.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.apply(target).Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h *treeHandler) apply(target slog.Handler) slog.Handler {
	for _, op := range h.ops {
		if op.group != "" {
			target = target.WithGroup(op.group)
		} else {
			target = target.WithAttrs(op.attrs)
		}
	}
	return target
}

func (h *treeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.ops = append(slices.Clone(h.ops), handlerOp{attrs: attrs})
	return &h2
}

func (h *treeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.ops = append(slices.Clone(h.ops), handlerOp{group: name})
	return &h2
}
