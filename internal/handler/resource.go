package handler

import (
	"encoding/json"
	"net/http"

	"pos-admin-api/internal/service"
	"pos-admin-api/pkg/apierror"
	"pos-admin-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// validatable is implemented by the record types served over HTTP.
type validatable interface {
	Validate() []apierror.FieldError
}

// ResourceHandler serves CRUD endpoints for one typed collection.
type ResourceHandler[T validatable] struct {
	collection *service.Collection[T]
}

// NewResourceHandler creates a handler for collection.
func NewResourceHandler[T validatable](collection *service.Collection[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{collection: collection}
}

func (h *ResourceHandler[T]) decode(r *http.Request) (T, error) {
	var item T
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		return item, apierror.BadRequest("invalid request body")
	}
	return item, nil
}

func (h *ResourceHandler[T]) validate(item T) error {
	if details := item.Validate(); len(details) > 0 {
		return apierror.ValidationError("invalid "+string(h.collection.Resource()), details...)
	}
	return nil
}

// List handles GET /api/v1/{resource}
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.collection.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, items)
}

// Create handles POST /api/v1/{resource}
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	item, err := h.decode(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.validate(item); err != nil {
		response.Error(w, err)
		return
	}

	created, err := h.collection.Create(r.Context(), item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, created)
}

// Update handles PUT /api/v1/{resource}/{id}. Only fields present in the
// body are changed, and the merged record must still validate.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	item, err := h.decode(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	updated, err := h.collection.Update(r.Context(), id, item, h.validate)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, updated)
}

// Delete handles DELETE /api/v1/{resource}/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.Error(w, apierror.BadRequest("id is required"))
		return
	}

	if err := h.collection.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}
