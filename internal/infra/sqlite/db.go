// Package sqlite provides SQLite-based persistent storage for Spotter.
// Uses WAL mode for concurrent reads and crash-safe writes. The schema
// enforces the engine's idempotence invariants: the points ledger is
// unique-keyed by event id and badge awards by (user, badge), so replays
// and at-least-once delivery degrade to no-ops instead of duplicates.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/spotter.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "spotter.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			timezone   TEXT NOT NULL DEFAULT 'UTC',
			partner_id TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,

		// Append-only workout event log. Events are never mutated; all
		// derived state is recomputed from here.
		`CREATE TABLE IF NOT EXISTS workout_events (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			day              INTEGER NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			recorded_at      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user_day ON workout_events(user_id, day)`,

		// Points ledger: UNIQUE(event_id) makes scoring idempotent.
		`CREATE TABLE IF NOT EXISTS points_ledger (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			event_id   TEXT NOT NULL UNIQUE,
			amount     INTEGER NOT NULL,
			multiplier REAL NOT NULL,
			reason     TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_user ON points_ledger(user_id, created_at)`,

		// Badge awards: the primary key is the at-most-once guarantee.
		`CREATE TABLE IF NOT EXISTS badge_awards (
			user_id    TEXT NOT NULL,
			badge_id   TEXT NOT NULL,
			awarded_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, badge_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_awards_time ON badge_awards(user_id, awarded_at)`,
	}

	for i, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
