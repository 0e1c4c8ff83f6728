// Package cache provides a time-bounded on-disk store for fetched purchase
// snapshots, keyed by the fetch parameters.
//
// The cache is purely a performance optimization: a miss or an expired
// entry is handled identically to a cold fetch, and correctness never
// depends on its contents.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/amazon-ynab-sync/internal/domain/purchase"
)

// Store is a sqlite-backed snapshot cache.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (creating if needed) the cache database at path. Entries older
// than ttl are treated as absent.
func Open(path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, ttl: ttl, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		fetched_at TIMESTAMP NOT NULL,
		payload    TEXT NOT NULL
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run cache migration: %w", err)
	}
	return nil
}

// Key derives a cache key from the fetch parameters. The account user is
// hashed so credentials never land on disk in the clear.
func Key(user string, years []int, days int) string {
	sum := sha256.Sum256([]byte(user))
	return fmt.Sprintf("user=%s;years=%v;days=%d", hex.EncodeToString(sum[:8]), years, days)
}

// Get returns the cached snapshot for key, reporting a miss when the entry
// is absent or older than the validity window.
func (s *Store) Get(key string) ([]purchase.Purchase, bool, error) {
	var fetchedAt time.Time
	var payload string

	row := s.db.QueryRow(`SELECT fetched_at, payload FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&fetchedAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	if s.now().Sub(fetchedAt) > s.ttl {
		return nil, false, nil
	}

	var purchases []purchase.Purchase
	if err := json.Unmarshal([]byte(payload), &purchases); err != nil {
		// A corrupt entry is just a miss.
		return nil, false, nil
	}

	return purchases, true, nil
}

// Put stores a snapshot for key, replacing any previous entry.
func (s *Store) Put(key string, purchases []purchase.Purchase) error {
	payload, err := json.Marshal(purchases)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (key, fetched_at, payload) VALUES (?, ?, ?)`,
		key, s.now(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
