package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing service (Postgres, Redis).
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness plus the state of each named check.
type HealthHandler struct {
	Checks map[string]HealthCheck
	Logger *slog.Logger
}

// ServeHTTP answers 200 {"status":"ok"} when every check passes and 503 otherwise.
// HEAD requests get the status code only.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok"}

	if len(h.Checks) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		results := make(map[string]string, len(h.Checks))
		for name, check := range h.Checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = "unavailable"
				if h.Logger != nil {
					h.Logger.WarnContext(r.Context(), "health check failed",
						slog.String("check", name),
						slog.Any("error", err),
					)
				}
				continue
			}
			results[name] = "ok"
		}
		body["checks"] = results
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, body)
}
