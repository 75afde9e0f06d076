package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pos-admin-api/internal/model"
	"pos-admin-api/internal/repository"
	"pos-admin-api/pkg/apierror"
)

// Collection is a typed view of one resource collection. T is the record's
// Go shape (model.Outlet, model.Discount); conversion goes through JSON so
// fields T does not declare are dropped on the way out.
type Collection[T any] struct {
	repo     repository.RecordRepository
	resource model.Resource

	firstUse     func(ctx context.Context) bool
	firstUseMu   sync.Mutex
	firstUseDone atomic.Bool
}

// NewCollection creates a typed collection over repo.
func NewCollection[T any](repo repository.RecordRepository, resource model.Resource) *Collection[T] {
	return &Collection[T]{repo: repo, resource: resource}
}

// OnFirstUse registers fn to run before the first operation. fn reports
// whether it finished; until it does, it runs again before the next one.
func (c *Collection[T]) OnFirstUse(fn func(ctx context.Context) bool) *Collection[T] {
	c.firstUse = fn
	return c
}

// Resource returns the collection's resource name.
func (c *Collection[T]) Resource() model.Resource {
	return c.resource
}

func (c *Collection[T]) touch(ctx context.Context) {
	if c.firstUse == nil || c.firstUseDone.Load() {
		return
	}

	c.firstUseMu.Lock()
	defer c.firstUseMu.Unlock()
	if c.firstUseDone.Load() {
		return
	}
	if c.firstUse(ctx) {
		c.firstUseDone.Store(true)
	}
}

func (c *Collection[T]) find(ctx context.Context, id string) (model.Record, error) {
	records, err := c.repo.List(ctx, c.resource)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, apierror.NotFound(fmt.Sprintf("%s %s not found", c.resource, id))
}

// List returns every record in the collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.touch(ctx)

	records, err := c.repo.List(ctx, c.resource)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		item, err := model.FromRecord[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Create stores item and returns it with its id and timestamps.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	c.touch(ctx)

	var zero T
	fields, err := model.ToRecord(item)
	if err != nil {
		return zero, err
	}
	rec, err := c.repo.Create(ctx, c.resource, fields)
	if err != nil {
		return zero, err
	}
	return model.FromRecord[T](rec)
}

// Update merges the non-empty fields of item into the record with id and
// writes the merged record back whole. Fields travel through item's JSON
// form, so an omitempty field can be neither cleared nor set to its zero
// value here. When check is non-nil it sees the merged value first and an
// error from it aborts the write.
func (c *Collection[T]) Update(ctx context.Context, id string, item T, check func(T) error) (T, error) {
	c.touch(ctx)

	var zero T
	fields, err := model.ToRecord(item)
	if err != nil {
		return zero, err
	}
	current, err := c.find(ctx, id)
	if err != nil {
		return zero, err
	}
	merged := current.Merge(fields)

	if check != nil {
		candidate, err := model.FromRecord[T](merged)
		if err != nil {
			return zero, err
		}
		if err := check(candidate); err != nil {
			return zero, err
		}
	}

	rec, err := c.repo.Update(ctx, c.resource, id, merged.WithoutMetadata())
	if err != nil {
		return zero, err
	}
	return model.FromRecord[T](rec)
}

// Delete removes the record with id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.touch(ctx)
	return c.repo.Delete(ctx, c.resource, id)
}
