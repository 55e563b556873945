// Package snapshot persists the last-fetched state of a domain store into
// a local sqlite file so it can be reloaded before the next remote fetch
// completes. A fresh fetch always overwrites the stored snapshot; there is
// no conflict resolution.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache is a durable key-value snapshot store
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at the given path
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Save serializes v as JSON and overwrites the snapshot stored under key
func (c *Cache) Save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	_, err = c.db.Exec(`
		INSERT INTO snapshots (key, payload, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, key, payload)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// Load decodes the snapshot stored under key into v. The boolean result
// is false when no snapshot exists, which is not an error.
func (c *Cache) Load(key string, v any) (bool, error) {
	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
