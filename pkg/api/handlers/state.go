// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindcore/mindcore/pkg/api/middleware"
	"github.com/mindcore/mindcore/pkg/api/response"
	"github.com/mindcore/mindcore/pkg/hub"
)

// StateHandler handles state lifecycle and cognition endpoints.
type StateHandler struct {
	hub    *hub.StateHub
	logger stateLogger
}

type stateLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewStateHandler creates a state handler.
func NewStateHandler(h *hub.StateHub, log stateLogger) *StateHandler {
	return &StateHandler{
		hub:    h,
		logger: log,
	}
}

func getRequestID(ctx context.Context) string {
	return middleware.GetRequestID(ctx)
}

// --- Request/Response types ---

type createStateRequest struct {
	Name string `json:"name"`
}

type updateRequest struct {
	Vector []float32 `json:"vector"`
	DeltaT float32   `json:"delta_t"`
}

type queryStateRequest struct {
	Vector []float32 `json:"vector"`
}

// CreateState handles POST /api/v1/states
func (h *StateHandler) CreateState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createStateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "invalid request body", getRequestID(ctx))
			return
		}
	}

	info, err := h.hub.CreateState(ctx, req.Name)
	if err != nil {
		h.logger.Error("failed to create state", "name", req.Name, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusCreated, info)
}

// ListStates handles GET /api/v1/states
func (h *StateHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"states": h.hub.List(),
	})
}

// GetState handles GET /api/v1/states/{id}
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	info, err := h.hub.GetInfo(id)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, info)
}

// DeleteState handles DELETE /api/v1/states/{id}
func (h *StateHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.hub.DeleteState(ctx, id); err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ResetState handles POST /api/v1/states/{id}/reset
func (h *StateHandler) ResetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.hub.ResetState(ctx, id); err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// UpdateState handles POST /api/v1/states/{id}/update
func (h *StateHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "invalid request body", getRequestID(ctx))
		return
	}
	if len(req.Vector) == 0 {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "vector is required", getRequestID(ctx))
		return
	}
	if req.DeltaT <= 0 {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "delta_t must be positive", getRequestID(ctx))
		return
	}

	result, err := h.hub.Update(ctx, id, req.Vector, req.DeltaT)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// QueryState handles POST /api/v1/states/{id}/query
func (h *StateHandler) QueryState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req queryStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrCodeBadRequest, "invalid request body", getRequestID(ctx))
		return
	}
	if len(req.Vector) == 0 {
		response.Error(w, http.StatusBadRequest, response.ErrCodeValidationFailed, "vector is required", getRequestID(ctx))
		return
	}

	result, err := h.hub.Query(ctx, id, req.Vector)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetPlasticity handles GET /api/v1/states/{id}/plasticity
func (h *StateHandler) GetPlasticity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	view, err := h.hub.Plasticity(id)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// GetTemporal handles GET /api/v1/states/{id}/temporal
func (h *StateHandler) GetTemporal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	view, err := h.hub.Temporal(id)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// GetCalibration handles GET /api/v1/states/{id}/calibration
func (h *StateHandler) GetCalibration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	view, err := h.hub.Calibration(id)
	if err != nil {
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// SaveState handles POST /api/v1/states/{id}/save
func (h *StateHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.hub.Save(ctx, id); err != nil {
		h.logger.Error("failed to save state", "state_id", id, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// LoadState handles POST /api/v1/states/{id}/load
func (h *StateHandler) LoadState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.hub.Load(ctx, id); err != nil {
		h.logger.Error("failed to load state", "state_id", id, "error", err)
		response.HandleError(w, err, getRequestID(ctx))
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}
