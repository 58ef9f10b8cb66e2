// Package store persists crawled movesets in a local SQLite database so
// repeat crawls can skip the network.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS movesets (
	name       TEXT PRIMARY KEY,
	dex        TEXT NOT NULL,
	moves      TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);`

// Store is the moveset cache. It satisfies fetch.Cache.
type Store struct {
	db *sql.DB
}

// Entry is one cached moveset row.
type Entry struct {
	Name      string
	Dex       string
	Moves     []string
	FetchedAt time.Time
}

// Open opens (and if needed initializes) the cache database at path. Use
// ":memory:" for an ephemeral cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveMoveset inserts or replaces the cached moveset for a species.
func (s *Store) SaveMoveset(name, dexID string, moves []string) error {
	encoded, err := json.Marshal(moves)
	if err != nil {
		return fmt.Errorf("failed to encode moveset for %s: %w", name, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO movesets (name, dex, moves, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			dex = excluded.dex,
			moves = excluded.moves,
			fetched_at = excluded.fetched_at
	`, name, dexID, string(encoded), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to cache moveset for %s: %w", name, err)
	}
	return nil
}

// Moveset looks up the cached moveset for a species. The second return is
// false on a cache miss.
func (s *Store) Moveset(name string) ([]string, bool, error) {
	var encoded string
	err := s.db.QueryRow("SELECT moves FROM movesets WHERE name = ?", name).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached moveset for %s: %w", name, err)
	}
	var moves []string
	if err := json.Unmarshal([]byte(encoded), &moves); err != nil {
		return nil, false, fmt.Errorf("corrupt cached moveset for %s: %w", name, err)
	}
	return moves, true, nil
}

// All returns every cached entry ordered by dex number, for export and
// inspection.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query("SELECT name, dex, moves, fetched_at FROM movesets ORDER BY CAST(dex AS INTEGER)")
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var encoded string
		if err := rows.Scan(&e.Name, &e.Dex, &encoded, &e.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &e.Moves); err != nil {
			return nil, fmt.Errorf("corrupt cached moveset for %s: %w", e.Name, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache rows: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
