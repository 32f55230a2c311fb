package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/samedayramps/app-samedayramps/internal/maps"
	"github.com/samedayramps/app-samedayramps/internal/metrics"
	"github.com/samedayramps/app-samedayramps/internal/services"
)

// DistanceHandler serves the round-trip delivery distance lookup.
type DistanceHandler struct {
	maps     *maps.Client
	settings *services.SettingsService
}

// NewDistanceHandler creates a new distance handler.
func NewDistanceHandler(mapsClient *maps.Client, settings *services.SettingsService) *DistanceHandler {
	return &DistanceHandler{maps: mapsClient, settings: settings}
}

// Get handles GET /api/v1/distance?address=...
//
// The origin is always the warehouse address from business settings; the
// destination is the customer's install address.
func (h *DistanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		badRequest(w, "Query parameter 'address' is required")
		return
	}

	warehouse := h.settings.Get(r.Context()).WarehouseAddress

	miles, err := h.maps.RoundTripMiles(r.Context(), warehouse, address)
	if err != nil {
		metrics.RecordDistanceLookup(false)
		if errors.Is(err, maps.ErrNoRoute) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"message": "No driving route found for that address",
			})
			return
		}
		log.Printf("[MAPS] Distance lookup failed for address '%s': %v", address, err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"message": "Distance lookup failed",
		})
		return
	}

	metrics.RecordDistanceLookup(true)
	writeJSON(w, http.StatusOK, map[string]float64{"distance": miles})
}
