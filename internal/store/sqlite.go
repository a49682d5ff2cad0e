package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteKV single-file local store. This is the default backend: settings
// live next to the user's other application data and survive restarts.
type SQLiteKV struct {
	sqlKV
	path string
}

// NewSQLiteKV opens (creating if needed) the database at path.
// ":memory:" is accepted for tests.
func NewSQLiteKV(ctx context.Context, path string) (*SQLiteKV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; also keeps a :memory: database alive across calls
	db.SetMaxOpenConns(1)

	s := &SQLiteKV{
		sqlKV: sqlKV{
			db: db,
			schemaQuery: `
			CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			getQuery: `SELECT value FROM kv WHERE key = ?`,
			setQuery: `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			removeQuery: `DELETE FROM kv WHERE key = ?`,
		},
		path: path,
	}

	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Path location of the database file
func (s *SQLiteKV) Path() string { return s.path }
