package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// responseRecorder captures the status code and body size on their way
// out so the middleware can log them after the handler returns.
type responseRecorder struct {
	http.ResponseWriter
	code  int
	bytes int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// NewLoggingMiddleware logs one line per request once the response is
// written. Handlers that never call WriteHeader count as 200.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"addr", r.RemoteAddr,
			"status", rec.code,
			"size", humanize.Bytes(uint64(rec.bytes)), //nolint:gosec
			"elapsed", time.Since(start))
	})
}
