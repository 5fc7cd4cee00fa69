package logger

import (
	"context"
	"log/slog"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "configomatic.logger"
	// reloadIDKey is the context key for the ID of a configuration reload.
	reloadIDKey contextKey = "configomatic.reload_id"
	// loggerNameKey carries the emitting logger's name to formatters.
	loggerNameKey contextKey = "configomatic.logger_name"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithReloadID adds a reload ID to the context.
func WithReloadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reloadIDKey, id)
}

// ReloadIDFromContext extracts the reload ID from context.
func ReloadIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(reloadIDKey).(string); ok {
		return id
	}
	return ""
}

func withLoggerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, loggerNameKey, name)
}

func loggerNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(loggerNameKey).(string); ok {
		return name
	}
	return ""
}

// L is a shorthand for FromContext that also enriches the logger
// with the reload ID from the context.
func L(ctx context.Context) *slog.Logger {
	l := FromContext(ctx)
	if id := ReloadIDFromContext(ctx); id != "" {
		l = l.With("reload_id", id)
	}
	return l
}
