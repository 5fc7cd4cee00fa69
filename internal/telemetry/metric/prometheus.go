package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "configomatic"

// Resolution results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds resolution metrics on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	resolutions     *prometheus.CounterVec
	resolveDuration prometheus.Histogram
	filesLoaded     *prometheus.CounterVec
	layerKeys       *prometheus.GaugeVec
}

// NewRegistry creates a registry with all metrics registered, plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Configuration resolutions by result",
		}, []string{"result"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time taken to resolve a configuration",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		filesLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Configuration files parsed, including included files",
		}, []string{"format"}),
		layerKeys: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layer_keys",
			Help:      "Top-level keys in each layer of the last resolution",
		}, []string{"layer"}),
	}

	r.reg.MustRegister(
		r.resolutions,
		r.resolveDuration,
		r.filesLoaded,
		r.layerKeys,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	if r == nil {
		return
	}
	r.reg.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Resolved records one resolution.
func (r *Registry) Resolved(err error, d time.Duration) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.resolutions.WithLabelValues(result).Inc()
	r.resolveDuration.Observe(d.Seconds())
}

// FileLoaded records one parsed file.
func (r *Registry) FileLoaded(format string) {
	if r == nil {
		return
	}
	r.filesLoaded.WithLabelValues(format).Inc()
}

// LayerKeys records the size of a layer.
func (r *Registry) LayerKeys(layer string, n int) {
	if r == nil {
		return
	}
	r.layerKeys.WithLabelValues(layer).Set(float64(n))
}

// Handler returns the HTTP handler serving the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
