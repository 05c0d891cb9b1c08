// Package handlers provides REST API handlers for contacts.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/contactdeck/backend/internal/contacts"
	"github.com/contactdeck/backend/internal/errors"
	"github.com/contactdeck/backend/internal/models"
)

// ContactHandler handles contact CRUD and history operations.
type ContactHandler struct {
	svc         *contacts.Service
	pageSize    int
	maxPageSize int
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *contacts.Service, pageSize, maxPageSize int) *ContactHandler {
	return &ContactHandler{svc: svc, pageSize: pageSize, maxPageSize: maxPageSize}
}

// page wraps list results in the paginated envelope.
type page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []*models.Contact `json:"results"`
}

// List handles GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > h.maxPageSize {
		pageSize = h.pageSize
	}
	offset := (pageNum - 1) * pageSize

	results, count, err := h.svc.List(pageSize, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []*models.Contact{}
	}

	envelope := page{Count: count, Results: results}
	if offset+len(results) < count {
		next := pageURL(r, pageNum+1, pageSize)
		envelope.Next = &next
	}
	if pageNum > 1 {
		previous := pageURL(r, pageNum-1, pageSize)
		envelope.Previous = &previous
	}

	writeJSON(w, http.StatusOK, envelope)
}

func pageURL(r *http.Request, pageNum, pageSize int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields models.ContactFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body."})
		return
	}

	contact, err := h.svc.Create(fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// Get handles GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.svc.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Update handles PUT /api/contacts/{id} (full) and PATCH (partial).
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var fields models.ContactFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request body."})
		return
	}

	partial := r.Method == http.MethodPatch
	contact, err := h.svc.Update(id, fields, partial)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/contacts/{id}/history
func (h *ContactHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := contactID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	versions, err := h.svc.History(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if versions == nil {
		versions = []*models.Version{}
	}

	writeJSON(w, http.StatusOK, versions)
}

// contactID extracts the {id} path value. Non-numeric identifiers behave
// like unknown contacts.
func contactID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrContactNotFound,
			fmt.Sprintf("contact not found: %s", raw))
	}
	return id, nil
}
