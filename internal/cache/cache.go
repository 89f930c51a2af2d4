// Package cache provides a SQLite-backed completion cache keyed by
// request hash.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a sql.DB holding cached completions.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite cache database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging cache database: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running cache migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory cache (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory cache: %w", err)
	}

	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running cache migrations: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS completions (
    request_hash TEXT PRIMARY KEY,
    model TEXT NOT NULL,
    response_json TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_completions_model ON completions(model);
`

// Get returns the cached response JSON for the given request hash.
func (s *Store) Get(ctx context.Context, requestHash string) (string, bool, error) {
	var respJSON string
	err := s.QueryRowContext(ctx,
		`SELECT response_json FROM completions WHERE request_hash = ?`, requestHash).Scan(&respJSON)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying completion cache: %w", err)
	}
	return respJSON, true, nil
}

// Put stores a response for the given request hash, replacing any previous entry.
func (s *Store) Put(ctx context.Context, requestHash, model, responseJSON string) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO completions (request_hash, model, response_json)
		VALUES (?, ?, ?)
		ON CONFLICT(request_hash) DO UPDATE SET
			model = excluded.model,
			response_json = excluded.response_json`,
		requestHash, model, responseJSON)
	if err != nil {
		return fmt.Errorf("inserting cached completion: %w", err)
	}
	return nil
}

// Count returns the number of cached completions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.QueryRowContext(ctx, `SELECT COUNT(*) FROM completions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cached completions: %w", err)
	}
	return n, nil
}
