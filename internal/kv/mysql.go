package kv

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var mysqlDialect = dialect{
	name: "mysql",
	schema: `
	CREATE TABLE IF NOT EXISTS pos_kv (
		store_key VARCHAR(191) NOT NULL PRIMARY KEY,
		store_value LONGTEXT NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
	get: "SELECT store_value FROM pos_kv WHERE store_key = ?",
	upsert: `
		INSERT INTO pos_kv (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			store_value = VALUES(store_value),
			updated_at = VALUES(updated_at)`,
	delete: "DELETE FROM pos_kv WHERE store_key = ?",
}

// NewMySQLStore connects to MySQL and ensures the kv table exists.
// dsn format: "user:pass@tcp(host:3306)/dbname?parseTime=true"
func NewMySQLStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	s, err := newSQLStore(db, mysqlDialect)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("[MySQLStore] Initialized")
	return s, nil
}
