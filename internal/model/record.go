package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Field names carried by every persisted record.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"

	// fieldRemoteID is the identifier field used by crudcrud-style services.
	fieldRemoteID = "_id"
)

// TimestampLayout is the format of createdAt/updatedAt values.
const TimestampLayout = time.RFC3339Nano

// Resource names a record collection.
type Resource string

const (
	ResourceOutlets   Resource = "outlets"
	ResourceDiscounts Resource = "discounts"
)

// Path returns the remote endpoint path for the collection.
func (r Resource) Path() string {
	return "/" + string(r)
}

// Operation is one of the four record operations.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Method returns the HTTP method the remote service expects for op.
func (op Operation) Method() string {
	switch op {
	case OpCreate:
		return http.MethodPost
	case OpUpdate:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Record is a resource record: caller-defined fields plus id and timestamps.
type Record map[string]any

// ID returns the record identifier, or "" if it has none.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with fields laid over it. id and createdAt are
// never overwritten.
func (r Record) Merge(fields Record) Record {
	out := r.Clone()
	for k, v := range fields {
		if k == FieldID || k == FieldCreatedAt || k == fieldRemoteID {
			continue
		}
		out[k] = v
	}
	return out
}

// WithoutMetadata returns a copy of r stripped of id and timestamps, i.e.
// only the caller-defined fields.
func (r Record) WithoutMetadata() Record {
	out := r.Clone()
	delete(out, FieldID)
	delete(out, fieldRemoteID)
	delete(out, FieldCreatedAt)
	delete(out, FieldUpdatedAt)
	return out
}

// Normalize renders numeric ids as strings and fills id from crudcrud's
// _id when id is missing.
func (r Record) Normalize() Record {
	if r == nil {
		return nil
	}
	for _, key := range []string{FieldID, fieldRemoteID} {
		switch v := r[key].(type) {
		case float64:
			r[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			r[key] = v.String()
		}
	}
	if r.ID() != "" {
		return r
	}
	if remoteID, ok := r[fieldRemoteID].(string); ok && remoteID != "" {
		r[FieldID] = remoteID
	}
	return r
}

// ToRecord converts a typed value to a Record through its JSON form.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// FromRecord converts a Record into a typed value through its JSON form.
func FromRecord[T any](rec Record) (T, error) {
	var out T
	data, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode record: %w", err)
	}
	return out, nil
}
