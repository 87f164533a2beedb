package store

import (
	"context"
	"database/sql"
	"delivery-fee-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore keeps a single blob in the kv_store table of a SQLite or Postgres database.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
	Key     string
}

func NewSQLStore(db *sql.DB, dialect Dialect, key string) *SQLStore {
	if key == "" {
		key = DefaultKey
	}
	return &SQLStore{DB: db, Dialect: dialect, Key: key}
}

// Load the stored blob, or nil when the key has never been written.
func (s *SQLStore) Load(ctx context.Context) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store: db is nil")
	}

	q := fmt.Sprintf(`
	SELECT payload
	FROM kv_store
	WHERE cache_key = %s;
	`, s.Dialect.Placeholder(1))

	var payload string
	err = s.DB.QueryRowContext(ctx, q, s.Key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load kv_store key=%q: %w", s.Key, err)
	}

	return []byte(payload), nil
}

// Save replaces the stored blob.
func (s *SQLStore) Save(ctx context.Context, blob []byte) (err error) {
	defer obs.Time(ctx, "kv.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("sql store: db is nil")
	}

	if strings.TrimSpace(s.Key) == "" {
		return errors.New("save kv_store: key must not be empty")
	}

	q := fmt.Sprintf(`
	INSERT INTO kv_store (cache_key, payload, updated_at)
	VALUES (%s, %s, %s)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`, s.Dialect.Placeholder(1), s.Dialect.Placeholder(2), s.Dialect.Placeholder(3))

	if _, err := s.DB.ExecContext(ctx, q, s.Key, string(blob), time.Now().Unix()); err != nil {
		return fmt.Errorf("save kv_store key=%q: %w", s.Key, err)
	}

	return nil
}
