package web

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
)

// HTTPServer carries the API listener.
type HTTPServer struct {
	Server *http.Server
}

// NewHTTPServer builds the API server on the configured listen address,
// with the full middleware chain from NewRouter.
func NewHTTPServer(ctx context.Context) (*HTTPServer, error) {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx)
	return &HTTPServer{
		Server: &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           NewRouter(ctx),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       10 * time.Second,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}, nil
}

// SetTLSConfig hands the server its TLS configuration. Must be called
// before ListenAndServe.
func (s *HTTPServer) SetTLSConfig(tlsConfig *tls.Config) {
	s.Server.TLSConfig = tlsConfig
}

// ListenAndServe serves requests until the server shuts down, speaking
// TLS when a TLS configuration was set.
func (s *HTTPServer) ListenAndServe() error {
	if s.Server.TLSConfig != nil {
		return s.Server.ListenAndServeTLS("", "")
	}
	return s.Server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

// Close tears the server down without waiting for requests to finish.
func (s *HTTPServer) Close() error {
	return s.Server.Close()
}
