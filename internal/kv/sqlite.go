package kv

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `
	CREATE TABLE IF NOT EXISTS pos_kv (
		store_key TEXT PRIMARY KEY,
		store_value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`,
	get: `SELECT store_value FROM pos_kv WHERE store_key = ?`,
	upsert: `
		INSERT INTO pos_kv (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(store_key) DO UPDATE SET
			store_value = excluded.store_value,
			updated_at = excluded.updated_at`,
	delete: `DELETE FROM pos_kv WHERE store_key = ?`,
}

// NewSQLiteStore opens (or creates) a SQLite database file.
// dbPath is the path to the database file (e.g., "./data/posadmin.db").
func NewSQLiteStore(dbPath string) (*SQLStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s, err := newSQLStore(db, sqliteDialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return s, nil
}
