package handler

import (
	"encoding/json"
	"net/http"

	"pos-admin-api/internal/repository"
	"pos-admin-api/pkg/apierror"
	"pos-admin-api/pkg/response"
)

// SettingsHandler exposes the remote API URL.
type SettingsHandler struct {
	remote *repository.RemoteRecordRepository
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(remote *repository.RemoteRecordRepository) *SettingsHandler {
	return &SettingsHandler{remote: remote}
}

// APIURLRequest is the body of PUT /settings/api-url.
type APIURLRequest struct {
	URL string `json:"url"`
}

// APIURLResponse describes the configured remote URL.
type APIURLResponse struct {
	URL        string `json:"url"`
	Configured bool   `json:"configured"`
}

// GetAPIURL handles GET /api/v1/settings/api-url
func (h *SettingsHandler) GetAPIURL(w http.ResponseWriter, r *http.Request) {
	u := h.remote.BaseURL(r.Context())
	response.OK(w, APIURLResponse{URL: u, Configured: u != ""})
}

// SetAPIURL handles PUT /api/v1/settings/api-url
func (h *SettingsHandler) SetAPIURL(w http.ResponseWriter, r *http.Request) {
	var req APIURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if err := h.remote.SetBaseURL(r.Context(), req.URL); err != nil {
		response.Error(w, err)
		return
	}

	u := h.remote.BaseURL(r.Context())
	response.OK(w, APIURLResponse{URL: u, Configured: u != ""})
}
