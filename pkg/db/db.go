// Package db provides the persistence layer used by the application. It
// wraps a SQLite database holding the recently-played snapshot the playback
// layer maintains. The widget's original storage was a single localStorage
// key with a JSON array. That shape is preserved: one key, one JSON-encoded
// array of at most twenty track snapshots, so the collaborator contract
// stays identical. Callers are expected to open a single DB
// instance using New and reuse it for all operations.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"Tune-Preview-Go/pkg/music"
)

// recentKey is the single key the recently-played snapshot lives under.
const recentKey = "recently_played"

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path. If the file does not exist
// it is created along with the required schema. The returned DB value wraps
// the sql.DB connection for use by the rest of the application.
func New(path string) (*DB, error) {
	// Open or create the SQLite database file.
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single key/value table keeps the storage model identical to the
	// original widget's localStorage.
	if _, err := d.Exec(`CREATE TABLE IF NOT EXISTS state (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		d.Close()
		return nil, fmt.Errorf("init db: %w", err)
	}
	return &DB{d}, nil
}

// SaveRecentlyPlayed persists the history snapshot, replacing any previous
// value. Callers pass the full capped list; the database never trims it.
func (db *DB) SaveRecentlyPlayed(ctx context.Context, tracks []music.Track) error {
	if tracks == nil {
		tracks = []music.Track{}
	}
	b, err := json.Marshal(tracks)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO state(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`, recentKey, string(b))
	return err
}

// LoadRecentlyPlayed returns the stored history snapshot, most recent first.
// A missing row yields an empty list, not an error, so first startup needs
// no special casing.
func (db *DB) LoadRecentlyPlayed(ctx context.Context) ([]music.Track, error) {
	var data string
	err := db.QueryRowContext(ctx, `SELECT value FROM state WHERE key=?`, recentKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []music.Track{}, nil
	}
	if err != nil {
		return nil, err
	}
	var tracks []music.Track
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil, fmt.Errorf("decode recently played: %w", err)
	}
	return tracks, nil
}
