package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/services"
)

// LeadsHandler serves the lead management endpoints.
type LeadsHandler struct {
	leads *services.LeadService
}

// NewLeadsHandler creates a new leads handler.
func NewLeadsHandler(leads *services.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// Routes mounts the lead endpoints on the given router.
func (h *LeadsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/overview", h.Overview)
	r.Get("/stats", h.Stats)
	r.Get("/{leadID}", h.Get)
	r.Put("/{leadID}", h.Update)
	r.Patch("/{leadID}/status", h.UpdateStatus)
	r.Delete("/{leadID}", h.Delete)
}

// Create handles POST /api/v1/leads
func (h *LeadsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.LeadInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	lead, err := h.leads.Create(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// List handles GET /api/v1/leads
func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Overview handles GET /api/v1/leads/overview
func (h *LeadsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.leads.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Stats handles GET /api/v1/leads/stats
func (h *LeadsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leads.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /api/v1/leads/{leadID}
func (h *LeadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Get(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Update handles PUT /api/v1/leads/{leadID}
func (h *LeadsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.LeadInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	lead, err := h.leads.Update(r.Context(), chi.URLParam(r, "leadID"), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// UpdateStatus handles PATCH /api/v1/leads/{leadID}/status
func (h *LeadsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	status := domain.LeadStatus(payload.Status)
	if !status.IsValid() {
		badRequest(w, "Invalid lead status")
		return
	}

	if err := h.leads.UpdateStatus(r.Context(), chi.URLParam(r, "leadID"), status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// Delete handles DELETE /api/v1/leads/{leadID}
func (h *LeadsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leads.Delete(r.Context(), chi.URLParam(r, "leadID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lead deleted"})
}
