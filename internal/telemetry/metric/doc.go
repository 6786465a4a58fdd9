// Package metric provides Prometheus metrics for gracerun.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry of work and drain metrics
//   - collector.go: scrape-time collector over a live RunContext
//   - server.go: HTTP server exposing /metrics
//
// Registry implements shutdown.Observer, so passing it to
// shutdown.WithObserver is all the wiring the core needs.
package metric
