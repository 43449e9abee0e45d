package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"

	_ "modernc.org/sqlite" // pure-go sqlite driver
)

// SQLite is a storage that keeps values in a single SQLite table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates new SQLite storage in the given directory.
func NewSQLite(dir string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path.Join(dir, "newsdesk.sqlite"))
	if err != nil {
		return nil, fmt.Errorf("open sqlite for %s: %w", dir, err)
	}

	// single writer, the client never shares the file
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Put puts the value under the key, replacing the previous one.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	const query = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("put %s to storage: %w", key, err)
	}

	return nil
}

// Get returns the value stored under the key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("select %s: %w", key, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("select %s: %w", key, err)
	}

	return value, nil
}

// Delete removes the key from storage.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

// Close closes the storage.
func (s *SQLite) Close() error { return s.db.Close() }
