// Package kv provides the key-value persistence behind the local fallback
// store. Each value is an opaque byte slice, typically a JSON document.
package kv

import "context"

// Store defines the key-value operations the fallback path relies on.
// The abstraction allows swapping between an in-process map (development),
// Redis, or a SQL table without changing the record layer.
type Store interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying connection.
	Close() error
}

// StoreError is a constant error type for the kv package.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrKeyNotFound indicates the key has no value.
	ErrKeyNotFound StoreError = "key not found"
)
