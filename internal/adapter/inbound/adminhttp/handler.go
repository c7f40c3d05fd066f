// Package adminhttp serves liveness and readiness endpoints beside the SSE
// transport. It is not part of the MCP surface; orchestrators probe it.
package adminhttp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jirabridge/jirabridge/internal/usecase"
)

// Handlers holds dependencies for the admin HTTP endpoints.
type Handlers struct {
	gateway *usecase.Gateway
	logger  *slog.Logger
}

// NewHandlers creates a Handlers struct.
func NewHandlers(gateway *usecase.Gateway, logger *slog.Logger) *Handlers {
	return &Handlers{
		gateway: gateway,
		logger:  logger.With("component", "adminhttp_handler"),
	}
}

// RegisterRoutes sets up the admin endpoints on the mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)
}

// handleHealthz reports process liveness only.
func (h *Handlers) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}

// handleReadyz runs the health tool, including remote connectivity, and
// maps a Failure envelope to 503 so load balancers stop routing to an
// instance that cannot reach Jira.
func (h *Handlers) handleReadyz(w http.ResponseWriter, r *http.Request) {
	env := h.gateway.Invoke(r.Context(), "health", map[string]any{"check_connectivity": true})

	ready := env.OK()
	if ready {
		// The health tool reports connectivity failures inside a Success
		// envelope; surface those as not-ready too.
		if data, ok := env.Data().(map[string]any); ok {
			if conn, ok := data["connectivity"].(map[string]any); ok {
				if s, _ := conn["status"].(string); s != "ok" {
					ready = false
				}
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
		h.logger.Warn("Readiness check failed", slog.String("error", env.Err()))
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.logger.Error("Failed to encode readiness response", slog.Any("error", err))
	}
}
