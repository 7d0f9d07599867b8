package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/intern-portal/internal/platform/logging"
)

// readyTimeout bounds a readiness probe.
const readyTimeout = 2 * time.Second

// Response is the payload for the health endpoints.
type Response struct {
	Status string `json:"status"`
}

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Handler is a plain HTTP handler for the liveness endpoint.
func Handler(w http.ResponseWriter, _ *http.Request) {
	write(w, http.StatusOK, "healthy")
}

// Ready returns a readiness handler that runs every check and answers 503 when any fails.
func Ready(checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for name, check := range checks {
			if err := check(ctx); err != nil {
				applog.LogError(r.Context(), "readiness check failed", err, zap.String("check", name))
				write(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		write(w, http.StatusOK, "ready")
	}
}

func write(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Status: s})
}
