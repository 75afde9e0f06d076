package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// dialect holds the statements that differ between SQL engines.
type dialect struct {
	name   string
	schema string
	get    string
	upsert string
	delete string
}

// SQLStore implements Store on a single key/value table.
// Works with any database/sql driver given a matching dialect.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

func newSQLStore(db *sql.DB, d dialect) (*SQLStore, error) {
	if _, err := db.Exec(d.schema); err != nil {
		return nil, fmt.Errorf("failed to create %s kv table: %w", d.name, err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// Get retrieves a value by key.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set inserts or replaces a value.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a value by key.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Dialect returns the engine name (sqlite, mysql, postgres).
func (s *SQLStore) Dialect() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
