// Package httpserver provides the HTTP status server of long-running
// commands.
//
// It serves, using stdlib net/http:
//
//   - /metrics: Prometheus metrics
//   - /healthz: liveness
//   - /status: the outcome of the latest resolution
//
// Every request passes through the middleware chain RequestLogger, Recover
// and AccessLog.
package httpserver
