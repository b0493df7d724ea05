package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "convene",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests served, by method and status code.",
}, []string{"method", "code"})

// NewRouter mounts every controller and wraps the result in the
// middleware chain. Innermost to outermost: request counting, request
// logging, context seeding, compression, CORS, panic recovery.
func NewRouter(ctx context.Context) http.Handler {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")

	router := mux.NewRouter()
	HealthController(ctx, router)
	AuthController(ctx, router)
	RespondController(ctx, router)
	APIController(ctx, router)
	router.PathPrefix("/").HandlerFunc(renderNotFound)

	var h http.Handler = promhttp.InstrumentHandlerCounter(httpRequests, router)
	h = NewLoggingMiddleware(h, logger)
	h = NewContextHandler(ctx)(h)
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.HTTP.CORS.AllowedOrigins),
		handlers.AllowedHeaders(cfg.HTTP.CORS.AllowedHeaders),
		handlers.AllowedMethods(cfg.HTTP.CORS.AllowedMethods),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)(h)

	return h
}
