package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/azimuth-cloud/configomatic/internal/core/loader"
)

// Collector reports which file formats this build can load.
type Collector struct {
	registry  *loader.Registry
	available *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector over a loader registry.
func NewCollector(registry *loader.Registry) *Collector {
	return &Collector{
		registry: registry,
		available: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "format_available"),
			"Whether a configuration format can be loaded (1) or was built without support (0)",
			[]string{"format", "library"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.available
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, h := range c.registry.Handlers() {
		v := 0.0
		if h.Available {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, v, string(h.Format), h.Library)
	}
}
