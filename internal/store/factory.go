// internal/store/factory.go
// Package: store
package store

import (
	"fmt"
	"strings"
)

// DefaultSQLitePath is used when the sqlite backend is chosen without a DSN.
const DefaultSQLitePath = "searchbench.db"

// Config selects and locates the storage backend.
type Config struct {
	Type string // "sqlite" or "postgres"
	DSN  string // file path for SQLite, connection string for Postgres
}

// Enabled reports whether a backend was requested at all.
func (c Config) Enabled() bool { return c.Type != "" || c.DSN != "" }

// New opens the configured backend. An empty type with a DSN means SQLite.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(cfg.DSN)
	case "sqlite", "sqlite3", "":
		if cfg.DSN == "" {
			cfg.DSN = DefaultSQLitePath
		}
		return NewSQLiteStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
