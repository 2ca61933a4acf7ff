package handlers

import (
	"context"
	"net/http"

	"github.com/priceoptimizer/backend/utils"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheck handles GET /healthz — liveness only.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, map[string]string{"status": "ok"})
	}
}

// ReadinessCheck handles GET /readyz — verifies the database is
// reachable.
func ReadinessCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(r.Context()); err != nil {
			_ = utils.WriteJSON(w, http.StatusServiceUnavailable, utils.ErrorResponse{
				Error:   "not_ready",
				Message: err.Error(),
			})
			return
		}
		_ = utils.WriteOK(w, map[string]string{"status": "ready"})
	}
}
