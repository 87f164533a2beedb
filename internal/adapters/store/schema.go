package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the key-value and geocode cache schema.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	realType := "REAL"
	if dialect == Postgres {
		realType = "DOUBLE PRECISION"
	}

	createKVStoreQuery := `
	CREATE TABLE IF NOT EXISTS kv_store (
		cache_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	);
	`

	createGeocodeCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat %[1]s NOT NULL,
		lng %[1]s NOT NULL
	);
	`, realType)

	statements := []string{
		createKVStoreQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
