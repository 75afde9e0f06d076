package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"pos-admin-api/internal/kv"
	"pos-admin-api/internal/model"
	"pos-admin-api/pkg/apierror"
	"pos-admin-api/pkg/uid"
)

// LocalRecordRepository implements RecordRepository on a kv.Store. Each
// collection is stored as one JSON array under the resource name and is
// rewritten whole on every change.
type LocalRecordRepository struct {
	store kv.Store
	mu    sync.Mutex

	newID func() string
	now   func() time.Time
}

// NewLocalRecordRepository creates the fallback record store.
func NewLocalRecordRepository(store kv.Store) *LocalRecordRepository {
	return &LocalRecordRepository{
		store: store,
		newID: uid.NewOrdered,
		now:   time.Now,
	}
}

func (r *LocalRecordRepository) load(ctx context.Context, resource model.Resource) ([]model.Record, error) {
	data, err := r.store.Get(ctx, string(resource))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

func (r *LocalRecordRepository) loadOrEmpty(ctx context.Context, resource model.Resource) ([]model.Record, error) {
	records, err := r.load(ctx, resource)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return []model.Record{}, nil
	}
	return records, err
}

func (r *LocalRecordRepository) save(ctx context.Context, resource model.Resource, records []model.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", resource, err)
	}
	if err := r.store.Set(ctx, string(resource), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", resource, err)
	}
	return nil
}

func (r *LocalRecordRepository) timestamp() string {
	return r.now().UTC().Format(model.TimestampLayout)
}

func indexOf(records []model.Record, id string) int {
	for i, rec := range records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

// List returns the collection, creating an empty one if absent.
func (r *LocalRecordRepository) List(ctx context.Context, resource model.Resource) ([]model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx, resource)
	if errors.Is(err, kv.ErrKeyNotFound) {
		records = []model.Record{}
		if err := r.save(ctx, resource, records); err != nil {
			return nil, err
		}
		return records, nil
	}
	return records, err
}

// Create assigns an id and createdAt, then appends the record.
func (r *LocalRecordRepository) Create(ctx context.Context, resource model.Resource, fields model.Record) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadOrEmpty(ctx, resource)
	if err != nil {
		return nil, err
	}

	rec := fields.WithoutMetadata()
	rec[model.FieldID] = r.newID()
	rec[model.FieldCreatedAt] = r.timestamp()

	if err := r.save(ctx, resource, append(records, rec)); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Update merges fields over the record and stamps updatedAt.
func (r *LocalRecordRepository) Update(ctx context.Context, resource model.Resource, id string, fields model.Record) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadOrEmpty(ctx, resource)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, id)
	if i < 0 {
		return nil, apierror.NotFound(fmt.Sprintf("%s %s not found", resource, id))
	}

	merged := records[i].Merge(fields)
	merged[model.FieldUpdatedAt] = r.timestamp()
	records[i] = merged

	if err := r.save(ctx, resource, records); err != nil {
		return nil, err
	}
	return merged.Clone(), nil
}

// Delete removes the record with the given id.
func (r *LocalRecordRepository) Delete(ctx context.Context, resource model.Resource, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadOrEmpty(ctx, resource)
	if err != nil {
		return err
	}

	i := indexOf(records, id)
	if i < 0 {
		return apierror.NotFound(fmt.Sprintf("%s %s not found", resource, id))
	}

	records = append(records[:i], records[i+1:]...)
	return r.save(ctx, resource, records)
}

var _ RecordRepository = (*LocalRecordRepository)(nil)
