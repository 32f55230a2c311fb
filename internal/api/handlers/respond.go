package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/samedayramps/app-samedayramps/pkg/errors"
	"github.com/samedayramps/app-samedayramps/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Invalid form data",
			"errors":  ve.Fields,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": appErr.Message})
		case apperrors.ErrCodeConflict:
			writeJSON(w, http.StatusConflict, map[string]string{"message": appErr.Message})
		case apperrors.ErrCodeUnauthorized:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": appErr.Message})
		case apperrors.ErrCodeValidation:
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": appErr.Message})
		default:
			log.Printf("[API] Internal error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		}
		return
	}

	log.Printf("[API] Unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": message})
}
