package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/azimuth-cloud/configomatic/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics is served on /metrics. Nil disables the endpoint.
	Metrics *metric.Registry

	// Status returns the value served as JSON on /status. Nil disables
	// the endpoint.
	Status func() any

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	if cfg.Status != nil {
		mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, cfg.Status())
		})
	}

	return Chain(mux,
		RequestLogger(logger),
		Recover(),
		AccessLog(),
	)
}
