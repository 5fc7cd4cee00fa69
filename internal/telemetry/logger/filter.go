package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// Filter decides whether a record is passed on to a handler.
type Filter interface {
	Allow(r slog.Record) bool
}

// LessThanFilter passes records strictly below Level. Paired with a
// handler whose minimum is Level, it splits output between two streams.
type LessThanFilter struct {
	Level slog.Level
}

// NewLessThanFilter parses level, which may be a name or a numeric level.
func NewLessThanFilter(level string) (LessThanFilter, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return LessThanFilter{}, err
	}
	return LessThanFilter{Level: lvl}, nil
}

// Allow implements Filter.
func (f LessThanFilter) Allow(r slog.Record) bool {
	return r.Level < f.Level
}

// newFilter builds the filter described by fc.
func newFilter(name string, fc FilterConfig) (Filter, error) {
	switch fc.Kind {
	case "less_than", "":
		f, err := NewLessThanFilter(fc.Level)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", name, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("filter %q: unknown kind %q", name, fc.Kind)
	}
}

// FilterHandler drops records rejected by any of its filters.
type FilterHandler struct {
	next    slog.Handler
	filters []Filter
}

var _ slog.Handler = (*FilterHandler)(nil)

// NewFilterHandler wraps next with filters.
func NewFilterHandler(next slog.Handler, filters ...Filter) *FilterHandler {
	return &FilterHandler{next: next, filters: filters}
}

// Enabled delegates to the wrapped handler.
func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle passes r on when every filter allows it.
func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, f := range h.filters {
		if !f.Allow(r) {
			return nil
		}
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &FilterHandler{next: h.next.WithAttrs(attrs), filters: h.filters}
}

// WithGroup implements slog.Handler.
func (h *FilterHandler) WithGroup(name string) slog.Handler {
	return &FilterHandler{next: h.next.WithGroup(name), filters: h.filters}
}
