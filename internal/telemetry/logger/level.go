package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// LevelCritical sits above error, for configurations that name it.
const LevelCritical = slog.LevelError + 4

// ParseLevel parses a level name (debug, info, warn/warning, error,
// critical; any case) or a numeric level on the 10/20/30/40/50 scale used
// by logging configuration files.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		// 10 -> debug (-4), 20 -> info (0), 30 -> warn (4), 40 -> error (8).
		return slog.Level((n - 20) * 2 / 5), nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LevelName returns the upper-case name of a level as written by the line
// formatter: DEBUG, INFO, WARNING, ERROR or CRITICAL.
func LevelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "DEBUG"
	case l < slog.LevelWarn:
		return "INFO"
	case l < slog.LevelError:
		return "WARNING"
	case l < LevelCritical:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}
