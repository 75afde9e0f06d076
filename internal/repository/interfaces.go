package repository

import (
	"context"

	"pos-admin-api/internal/model"
)

// RecordRepository defines CRUD access to a resource collection. The remote
// HTTP service, the local fallback store and the transport selector all
// implement it, so callers never know which backend served them.
type RecordRepository interface {
	// List returns the whole collection in insertion order.
	List(ctx context.Context, resource model.Resource) ([]model.Record, error)

	// Create stores a new record and returns it with its assigned id.
	Create(ctx context.Context, resource model.Resource, fields model.Record) (model.Record, error)

	// Update merges fields into the record with the given id.
	// Returns apierror.ErrNotFound if there is no such record.
	Update(ctx context.Context, resource model.Resource, id string, fields model.Record) (model.Record, error)

	// Delete removes the record with the given id.
	// Returns apierror.ErrNotFound if there is no such record.
	Delete(ctx context.Context, resource model.Resource, id string) error
}
