// internal/http/json.go
package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maslima80/hatchy-sub001/internal/models"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "err", err)
	}
}

// Error maps a domain error to its HTTP status and writes the JSON error body.
// Unknown errors become a generic 500; internal detail never reaches the caller.
func Error(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, models.ErrNotFound):
		JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, models.ErrConflict):
		JSON(w, http.StatusConflict, map[string]string{"error": "already exists"})
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Msg})
	default:
		slog.Error("request failed", "err", err)
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
