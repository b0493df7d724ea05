package serve

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/cron"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/jobs"
	"github.com/convenehq/convene/pkg/stats"
	"github.com/convenehq/convene/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the Convene server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.Server
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server configured to serve Convene. When TLS is
// configured, certificates are reloaded on SIGHUP.
// It expects a context with *backend.Backend, *db.DB, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	db := db.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: be,
		DB:      db,
		logger:  logger,
		ctx:     ctx,
	}

	srv.Cron = cron.NewScheduler(ctx)
	jobs.Schedule(ctx, srv.Cron)

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	if cfg.HTTP.TLSCertPath != "" && cfg.HTTP.TLSKeyPath != "" {
		reloader, err := web.NewCertReloader(cfg.HTTP.TLSCertPath, cfg.HTTP.TLSKeyPath, logger.WithPrefix("tls"))
		if err != nil {
			return nil, fmt.Errorf("load tls certificate: %w", err)
		}

		srv.HTTPServer.SetTLSConfig(&tls.Config{
			MinVersion:     tls.VersionTLS12,
			GetCertificate: reloader.GetCertificateFunc(),
		})
	}

	srv.StatsServer, err = stats.NewServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the server.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// optionally start the Stats server
	if s.Config.Stats.ListenAddr != "" {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		jobs.Unschedule(s.Cron)
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}

// Close closes the server.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}
