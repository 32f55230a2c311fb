package handlers

import (
	"net/http"

	"github.com/samedayramps/app-samedayramps/internal/services"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	health *services.HealthService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.health.Check(r.Context()))
}
