package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"delivery-fee-service/internal/platform/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStore_SQLiteRoundTrip(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InitSchema(conn, SQLite))

	s := NewSQLStore(conn, SQLite, "")
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "empty store should load nil")

	require.NoError(t, s.Save(ctx, []byte(`{"a":1}`)))
	require.NoError(t, s.Save(ctx, []byte(`{"b":2}`)))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(got))
}

func TestSQLStore_PostgresLoad(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM kv_store WHERE cache_key = $1")).
		WithArgs(DefaultKey).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"k":"v"}`))

	s := NewSQLStore(conn, Postgres, DefaultKey)
	got, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PostgresLoadMissing(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM kv_store")).
		WithArgs(DefaultKey).
		WillReturnError(sql.ErrNoRows)

	got, err := NewSQLStore(conn, Postgres, "").Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PostgresSave(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store (cache_key, payload, updated_at) VALUES ($1, $2, $3)")).
		WithArgs(DefaultKey, `{"k":"v"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSQLStore(conn, Postgres, "").Save(context.Background(), []byte(`{"k":"v"}`))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PostgresSaveError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).WillReturnError(boom)

	err = NewSQLStore(conn, Postgres, "").Save(context.Background(), []byte("{}"))

	assert.ErrorIs(t, err, boom)
}

func TestSQLStore_NilDB(t *testing.T) {
	s := &SQLStore{}

	_, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, s.Save(context.Background(), nil))
}
