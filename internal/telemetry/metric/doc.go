// Package metric provides Prometheus metrics for configuration resolution.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: resolution metrics and the HTTP handler
//   - collector.go: format availability collector
//
// Metrics include:
//
//   - Resolution counts by result and a duration histogram
//   - Files loaded by format, including included files
//   - Key counts per layer of the last resolution
//
// Every Registry method is safe to call on a nil *Registry, so callers can
// leave metrics disabled without guarding each call.
package metric
