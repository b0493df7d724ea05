package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/convenehq/convene/cmd"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/db/migrate"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the server",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.DefaultConfig()
		if cfg.Exist() {
			if err := cfg.ParseFile(); err != nil {
				return fmt.Errorf("parse config file: %w", err)
			}
		} else {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
		}

		if err := cfg.ParseEnv(); err != nil {
			return fmt.Errorf("parse environment variables: %w", err)
		}

		// Create log directory if it doesn't exist
		logPath := filepath.Join(cfg.DataPath, "log")
		if _, err := os.Stat(logPath); err != nil && os.IsNotExist(err) {
			os.MkdirAll(logPath, os.ModePerm) //nolint:errcheck
		}

		db := db.FromContext(ctx)
		if err := migrate.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		be := backend.FromContext(ctx)
		if err := cmd.CreateInitialOrganizers(ctx, config.FromContext(ctx), be); err != nil {
			return fmt.Errorf("create initial organizers: %w", err)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		done := make(chan os.Signal, 1)
		doneOnce := sync.OnceFunc(func() { close(done) })

		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		// This endpoint is added for testing purposes
		// It allows us to stop the server from the test suite.
		// This is needed since Windows doesn't support signals.
		if testRun, _ := strconv.ParseBool(os.Getenv("CONVENE_TESTRUN")); testRun {
			h := s.HTTPServer.Server.Handler
			s.HTTPServer.Server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/__stop" && r.Method == http.MethodHead {
					doneOnce()
					return
				}
				h.ServeHTTP(w, r)
			})
		}

		go func() {
			lch <- s.Start()
			doneOnce()
		}()

		select {
		case err := <-lch:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-done:
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			return err
		}

		return nil
	},
}
