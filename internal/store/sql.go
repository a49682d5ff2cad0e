package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sqlKV shared implementation over database/sql; the dialects differ only in their statements.
type sqlKV struct {
	db *sql.DB

	schemaQuery string
	getQuery    string
	setQuery    string
	removeQuery string
}

func (s *sqlKV) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.schemaQuery); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (s *sqlKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMiss
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *sqlKV) Set(ctx context.Context, key string, value string) error {
	if _, err := s.db.ExecContext(ctx, s.setQuery, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.removeQuery, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *sqlKV) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
