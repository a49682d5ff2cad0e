package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"careconnect/internal/config"
)

// NewPostgresDB opens and pings a PostgreSQL connection pool.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// PostgresKV settings_kv table on a shared PostgreSQL instance
// (several workstations of one facility share a namespace).
type PostgresKV struct {
	sqlKV
}

// NewPostgresKV wraps db. Call EnsureSchema once before first use on a fresh database.
func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{
		sqlKV: sqlKV{
			db: db,
			schemaQuery: `
			CREATE TABLE IF NOT EXISTS settings_kv (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			getQuery: `SELECT value FROM settings_kv WHERE key = $1`,
			setQuery: `
			INSERT INTO settings_kv (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			removeQuery: `DELETE FROM settings_kv WHERE key = $1`,
		},
	}
}

// EnsureSchema creates settings_kv if missing.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	return p.ensureSchema(ctx)
}
