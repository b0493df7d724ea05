// Package stats exposes the prometheus metrics endpoint.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/convenehq/convene/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves collected metrics over HTTP on the stats listener.
// Metrics registered anywhere in the process through the default
// prometheus registerer show up here.
type Server struct {
	server *http.Server
}

// NewServer returns a stats server bound to the configured listen
// address.
func NewServer(ctx context.Context) (*Server, error) {
	cfg := config.FromContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
	}, nil
}

// ListenAndServe starts serving metrics.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully drains the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close force-closes the listener.
func (s *Server) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
