package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/convenehq/convene/pkg/db"
	"github.com/gorilla/mux"
)

// HealthController mounts the liveness and readiness probes.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

// getLiveness answers 200 whenever the process is up.
func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness answers 200 only while the database responds to pings.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dbx := db.FromContext(ctx)
	if err := dbx.PingContext(ctx); err != nil {
		log.FromContext(ctx).Error("readiness probe failed", "err", err)
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}
	renderStatus(http.StatusOK)(w, nil)
}
