// Package store provides DuckDB-backed persistence of analysis results.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/dkrasn/seqlens/internal/resultcache"
)

// Store persists analysis results keyed the same way as the in-memory
// cache, so results survive across runs. Payloads are the JSON encoding of
// the result; the store never interprets them.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a DuckDB database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			fingerprint VARCHAR,
			op VARCHAR,
			params VARCHAR,
			payload VARCHAR,
			created_at TIMESTAMP,
			PRIMARY KEY (fingerprint, op, params)
		);

		CREATE INDEX IF NOT EXISTS idx_results_fingerprint ON results(fingerprint);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put stores a result payload, replacing any previous entry for the key.
func (s *Store) Put(key resultcache.Key, payload []byte) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO results (fingerprint, op, params, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, key.Fingerprint, key.Op, key.Params, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Get returns the stored payload for a key, or false if absent.
func (s *Store) Get(key resultcache.Key) ([]byte, bool, error) {
	row := s.db.QueryRow(`
		SELECT payload FROM results
		WHERE fingerprint = ? AND op = ? AND params = ?
	`, key.Fingerprint, key.Op, key.Params)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("scan result: %w", err)
	}
	return []byte(payload), true, nil
}

// Count returns the total number of stored results.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count)
	return count, err
}

// Ops returns the operation names stored for a sequence fingerprint,
// ordered for deterministic output.
func (s *Store) Ops(fingerprint string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT op FROM results WHERE fingerprint = ? ORDER BY op
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("query ops: %w", err)
	}
	defer rows.Close()

	var ops []string
	for rows.Next() {
		var op string
		if err := rows.Scan(&op); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
