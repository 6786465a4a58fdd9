package metric

import (
	"net/http"
	"time"
)

// NewServer returns an HTTP server exposing r at /metrics.
// The caller starts it and shuts it down.
func NewServer(addr string, r *Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
