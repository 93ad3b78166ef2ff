// internal/store/postgres.go
// Package: store
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	numbered:  true,
	returning: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			algorithm TEXT NOT NULL,
			target TEXT NOT NULL,
			seed BIGINT NOT NULL,
			trials INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS trials (
			run_id BIGINT NOT NULL REFERENCES runs(id),
			size INTEGER NOT NULL,
			trial_id INTEGER NOT NULL,
			length INTEGER NOT NULL,
			target BIGINT NOT NULL,
			idx BIGINT NOT NULL,
			millis DOUBLE PRECISION NOT NULL,
			ok BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS trials_run_size ON trials (run_id, size);`,
	},
}

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects to dsn and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{sqlStore{db: db, d: postgresDialect}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}
