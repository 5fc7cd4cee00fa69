// Package logger provides structured logging for configomatic.
//
// It wraps the standard library log/slog:
//
//   - logger.go: handler construction and the process-wide Setup
//   - config.go: logging configuration with default formatters, filters,
//     handlers and loggers, applied from a configuration layer
//   - format.go: line formatter with quoted message and key="value" extras
//   - filter.go: level filters
//   - context.go: context-aware logging with reload IDs
//   - redact.go: sensitive data redaction for log attributes and layers
//
// Features:
//
//   - JSON, text and line output formats
//   - Log level filtering, including upper bounds so that records below
//     WARNING go to stdout and the rest to stderr
//   - Hierarchical named loggers with propagation
//   - Automatic sensitive data masking
package logger
