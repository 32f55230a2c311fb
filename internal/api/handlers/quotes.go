package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samedayramps/app-samedayramps/internal/domain"
	"github.com/samedayramps/app-samedayramps/internal/services"
)

// QuotesHandler serves the quote endpoints.
type QuotesHandler struct {
	quotes *services.QuoteService
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(quotes *services.QuoteService) *QuotesHandler {
	return &QuotesHandler{quotes: quotes}
}

// Routes mounts the quote endpoints on the given router.
func (h *QuotesHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{quoteID}", h.Get)
	r.Patch("/{quoteID}/status", h.UpdateStatus)
	r.Delete("/{quoteID}", h.Delete)
}

// Create handles POST /api/v1/quotes
func (h *QuotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.QuoteInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	quote, err := h.quotes.Create(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

// List handles GET /api/v1/quotes
func (h *QuotesHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quotes.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

// Get handles GET /api/v1/quotes/{quoteID}
func (h *QuotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quotes.Get(r.Context(), chi.URLParam(r, "quoteID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// UpdateStatus handles PATCH /api/v1/quotes/{quoteID}/status
func (h *QuotesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "Invalid JSON body")
		return
	}

	status := domain.QuoteStatus(payload.Status)
	if !status.IsValid() {
		badRequest(w, "Invalid quote status")
		return
	}

	if err := h.quotes.UpdateStatus(r.Context(), chi.URLParam(r, "quoteID"), status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// Delete handles DELETE /api/v1/quotes/{quoteID}
func (h *QuotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.quotes.Delete(r.Context(), chi.URLParam(r, "quoteID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quote deleted"})
}
