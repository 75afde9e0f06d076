package handler

import (
	"encoding/json"
	"net/http"

	"pos-admin-api/internal/model"
	"pos-admin-api/internal/service"
	"pos-admin-api/pkg/apierror"
	"pos-admin-api/pkg/response"
)

// SelectionHandler handles the session's selected outlet.
type SelectionHandler struct {
	selection *service.SelectionService
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(selection *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selection: selection}
}

// Get handles GET /api/v1/selected-outlet. Data is null when nothing is selected.
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	outlet, err := h.selection.Get(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, outlet)
}

// Set handles PUT /api/v1/selected-outlet
func (h *SelectionHandler) Set(w http.ResponseWriter, r *http.Request) {
	var outlet model.Outlet
	if err := json.NewDecoder(r.Body).Decode(&outlet); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if outlet.ID == "" {
		response.Error(w, apierror.ValidationError("invalid outlet",
			apierror.FieldError{Field: "id", Message: "id is required"}))
		return
	}

	if err := h.selection.Set(r.Context(), outlet); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, outlet)
}

// Clear handles DELETE /api/v1/selected-outlet
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.selection.Clear(r.Context()); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
