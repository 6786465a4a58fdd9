package metric

import "github.com/prometheus/client_golang/prometheus"

// Source is the read side of a RunContext.
type Source interface {
	Pending() int
	Cancelled() bool
}

// Collector reports RunContext state at scrape time.
type Collector struct {
	src       Source
	pending   *prometheus.Desc
	requested *prometheus.Desc
}

// NewCollector creates a collector over src.
func NewCollector(src Source) *Collector {
	return &Collector{
		src: src,
		pending: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "work_pending"),
			"Accepted work handles not yet released, read from the registry.",
			nil, nil,
		),
		requested: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "termination_requested"),
			"1 once termination has been requested.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
	ch <- c.requested
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	requested := 0.0
	if c.src.Cancelled() {
		requested = 1
	}
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(c.src.Pending()))
	ch <- prometheus.MustNewConstMetric(c.requested, prometheus.GaugeValue, requested)
}
