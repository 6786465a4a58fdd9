package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/gracerun/internal/infra/shutdown"
)

const namespace = "gracerun"

var _ shutdown.Observer = (*Registry)(nil)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	Inflight      prometheus.Gauge
	Admitted      prometheus.Counter
	Rejected      prometheus.Counter
	Released      prometheus.Counter
	Drains        *prometheus.CounterVec
	DrainDuration prometheus.Histogram
}

// NewRegistry creates a registry with work and drain metrics plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "work_inflight",
			Help:      "Work handles currently held.",
		}),
		Admitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_admitted_total",
			Help:      "Work handles admitted to the registry.",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_rejected_total",
			Help:      "Registrations rejected after termination was requested.",
		}),
		Released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_released_total",
			Help:      "Work handles released.",
		}),
		Drains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drain_total",
			Help:      "Drain waits by outcome.",
		}, []string{"outcome"}),
		DrainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drain_duration_seconds",
			Help:      "Time spent waiting for work to drain.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Inflight,
		r.Admitted,
		r.Rejected,
		r.Released,
		r.Drains,
		r.DrainDuration,
	)

	return r
}

// WorkAdmitted implements shutdown.Observer.
func (r *Registry) WorkAdmitted() {
	r.Admitted.Inc()
	r.Inflight.Inc()
}

// WorkRejected implements shutdown.Observer.
func (r *Registry) WorkRejected() {
	r.Rejected.Inc()
}

// WorkReleased implements shutdown.Observer.
func (r *Registry) WorkReleased() {
	r.Released.Inc()
	r.Inflight.Dec()
}

// DrainFinished implements shutdown.Observer.
func (r *Registry) DrainFinished(drained bool, elapsed time.Duration) {
	outcome := "timeout"
	if drained {
		outcome = "drained"
	}
	r.Drains.WithLabelValues(outcome).Inc()
	r.DrainDuration.Observe(elapsed.Seconds())
}

// Watch registers a scrape-time collector over src.
func (r *Registry) Watch(src Source) error {
	return r.registry.Register(NewCollector(src))
}

// Gatherer returns the underlying gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
