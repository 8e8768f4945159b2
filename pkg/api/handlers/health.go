package handlers

import (
	"net/http"

	"github.com/mindcore/mindcore/pkg/api/response"
	"github.com/mindcore/mindcore/pkg/hub"
	"github.com/mindcore/mindcore/pkg/version"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	hub *hub.StateHub
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(h *hub.StateHub) *HealthHandler {
	return &HealthHandler{hub: h}
}

// Health handles the /health endpoint (liveness probe).
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Ready handles the /ready endpoint (readiness probe).
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		response.JSON(w, http.StatusServiceUnavailable, map[string]bool{"ready": false})
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"ready": true})
}

// Status handles the /status endpoint (detailed status).
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"version": version.Version,
	}
	if h.hub != nil {
		rt := h.hub.Runtime()
		status["states_active"] = len(h.hub.List())
		status["embedding_dim"] = rt.Dim()
		status["max_slots"] = rt.MaxSlots()
	}
	response.JSON(w, http.StatusOK, status)
}
