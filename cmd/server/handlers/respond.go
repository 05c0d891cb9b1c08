// Package handlers provides REST API handlers for contacts.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contactdeck/backend/internal/errors"
	"github.com/contactdeck/backend/internal/logging"
	"github.com/contactdeck/backend/internal/metrics"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logging.Errorf("failed to encode response", err)
		}
	}
}

// writeError maps application errors to HTTP responses. Validation and
// duplicate-email errors answer 400 with a field map; unknown identifiers
// answer 404; everything else is a generic 500.
func writeError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		logging.Errorf("unhandled error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error."})
		return
	}

	metrics.MutationFailuresTotal.WithLabelValues(string(appErr.Code)).Inc()

	switch appErr.Code {
	case errors.ErrValidation, errors.ErrDuplicateEmail:
		writeJSON(w, http.StatusBadRequest, appErr.Fields)
	case errors.ErrNotFound, errors.ErrContactNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	default:
		logging.Errorf("request failed", appErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error."})
	}
}
