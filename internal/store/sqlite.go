// internal/store/sqlite.go
// Package: store
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	schema: []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME NOT NULL,
			algorithm TEXT NOT NULL,
			target TEXT NOT NULL,
			seed INTEGER NOT NULL,
			trials INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS trials (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			size INTEGER NOT NULL,
			trial_id INTEGER NOT NULL,
			length INTEGER NOT NULL,
			target INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			millis REAL NOT NULL,
			ok BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS trials_run_size ON trials (run_id, size);`,
	},
}

// SQLiteStore implements Store on a SQLite file.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (creating if needed) the database at path and
// applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// A single connection keeps SQLite writes serialized.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{sqlStore{db: db, d: sqliteDialect}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}
