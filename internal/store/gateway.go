// Package store is the persistence gateway: durable whole-collection
// storage plus validated file import/export. Loads degrade to an empty
// collection and saves are best-effort; neither surfaces storage failures
// to the caller.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"fairshare/internal/exploration"
)

// StorageKey is the single document key the exploration collection is
// stored under.
const StorageKey = "climateExplorations"

// Gateway is the persistence contract the session controller writes
// through. Implementations may target any durable medium.
type Gateway interface {
	// Load reads the stored collection. Absent, unparsable, or invalid
	// state degrades to an empty slice; it never fails the caller.
	Load(ctx context.Context) []exploration.Exploration

	// Save overwrites the stored collection with the given one.
	// Failures are logged, not surfaced (best-effort persistence).
	Save(ctx context.Context, exps []exploration.Exploration)
}

// SQLite is the Gateway backed by the local SQLite document table.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLite creates a SQLite gateway over an initialized database.
func NewSQLite(db *sql.DB, log zerolog.Logger) *SQLite {
	return &SQLite{db: db, log: log}
}

// Load implements Gateway.
func (s *SQLite) Load(ctx context.Context) []exploration.Exploration {
	var blob string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM documents WHERE key = ?", StorageKey,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return []exploration.Exploration{}
	}
	if err != nil {
		s.log.Error().Err(err).Msg("storage load failed; starting empty")
		return []exploration.Exploration{}
	}

	exps, err := exploration.DecodeCollection([]byte(blob))
	if err != nil {
		// Malformed persisted state is treated as absent state.
		s.log.Warn().Err(err).Msg("stored collection failed validation; starting empty")
		return []exploration.Exploration{}
	}
	return exps
}

// Save implements Gateway.
func (s *SQLite) Save(ctx context.Context, exps []exploration.Exploration) {
	if exps == nil {
		exps = []exploration.Exploration{}
	}
	blob, err := json.Marshal(exps)
	if err != nil {
		s.log.Error().Err(err).Msg("storage save failed: marshal")
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, StorageKey, string(blob), time.Now().Unix())
	if err != nil {
		s.log.Error().Err(err).Msg("storage save failed: write")
	}
}
