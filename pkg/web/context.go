package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/backend"
	"github.com/convenehq/convene/pkg/config"
	"github.com/convenehq/convene/pkg/db"
	"github.com/convenehq/convene/pkg/store"
)

// NewContextHandler seeds each request context with the process-wide
// dependencies so handlers can pull them back out with FromContext.
// The request logger carries the method, path, and remote address.
func NewContextHandler(ctx context.Context) func(http.Handler) http.Handler {
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With(
				"method", r.Method,
				"path", r.URL.Path,
				"addr", r.RemoteAddr,
			)

			ctx := r.Context()
			ctx = config.WithContext(ctx, cfg)
			ctx = backend.WithContext(ctx, be)
			ctx = db.WithContext(ctx, dbx)
			ctx = store.WithContext(ctx, datastore)
			ctx = log.WithContext(ctx, reqLogger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
