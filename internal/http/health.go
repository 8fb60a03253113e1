package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/redmonkez12/fintrack-api/internal/httputil"
	"github.com/redmonkez12/fintrack-api/internal/logging"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthResponse lists the state of every dependency
type HealthResponse struct {
	Checks map[string]string `json:"checks"`
}

// healthHandler pings every registered dependency
// @Summary      Health check
// @Description  Check if the API and its dependencies are reachable
// @Tags         health
// @Produce      json
// @Success      200 {object} httputil.Envelope{data=HealthResponse}
// @Failure      503 {object} httputil.Envelope{data=HealthResponse}
// @Router       /health [get]
func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := HealthResponse{Checks: make(map[string]string, len(checks))}
		healthy := true

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logging.GetLoggerFromContext(r.Context()).Error("health check failed",
					"dependency", name,
					"error", err.Error(),
				)
				resp.Checks[name] = "unavailable"
				healthy = false
				continue
			}
			resp.Checks[name] = "ok"
		}

		if !healthy {
			httputil.RespondJSON(w, httputil.Envelope{
				Success: false,
				Status:  http.StatusText(http.StatusServiceUnavailable),
				Message: "API is degraded",
				Data:    resp,
			}, http.StatusServiceUnavailable)
			return
		}

		httputil.RespondSuccess(w, http.StatusOK, "API is running", resp)
	}
}
