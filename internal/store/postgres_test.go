package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *PostgresKV) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return mock, NewPostgresKV(db)
}

func TestPostgresKV_EnsureSchema(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS settings_kv`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, kv.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_Get_Success(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	key := "careconnect:settings_v1:text_size"
	mock.ExpectQuery(`SELECT value FROM settings_kv WHERE key`).
		WithArgs(key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("large"))

	v, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "large", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_Get_Miss(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	key := "careconnect:settings_v1:handedness"
	mock.ExpectQuery(`SELECT value FROM settings_kv WHERE key`).
		WithArgs(key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := kv.Get(context.Background(), key)
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_Get_QueryError(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	key := "careconnect:settings_v1:handedness"
	mock.ExpectQuery(`SELECT value FROM settings_kv WHERE key`).
		WithArgs(key).
		WillReturnError(errors.New("connection reset"))

	_, err := kv.Get(context.Background(), key)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_SetAndRemove(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	key := "careconnect:settings_v1:notifications"
	mock.ExpectExec(`INSERT INTO settings_kv`).
		WithArgs(key, "false").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM settings_kv WHERE key`).
		WithArgs(key).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Set(context.Background(), key, "false"))
	require.NoError(t, kv.Remove(context.Background(), key))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKV_Set_Error(t *testing.T) {
	mock, kv := setupMockDB(t)
	defer kv.Close()

	mock.ExpectExec(`INSERT INTO settings_kv`).
		WillReturnError(errors.New("read-only transaction"))

	err := kv.Set(context.Background(), "careconnect:settings_v1:handedness", "left")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set")
}
