// Package handlers provides REST API handlers for contacts.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/contactdeck/backend/internal/contacts"
	"github.com/contactdeck/backend/internal/models"
)

// ExternalHandler is the gateway for trusted callers outside the primary
// API. It funnels into the same mutation pipeline as the contact endpoints,
// so external updates get the identical persistence and broadcast guarantees.
type ExternalHandler struct {
	svc *contacts.Service
}

// NewExternalHandler creates a new ExternalHandler.
func NewExternalHandler(svc *contacts.Service) *ExternalHandler {
	return &ExternalHandler{svc: svc}
}

// Update handles POST /api/external-update
func (h *ExternalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ID int64 `json:"id"`
		models.ContactFields
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body."})
		return
	}

	contact, err := h.svc.ExternalUpdate(request.ID, request.ContactFields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}
