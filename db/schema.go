// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) CreateSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if s.dialect == DialectPostgres {
		stmts = postgresSchema
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS polls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS options (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		poll_id INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		label TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_options_poll_id ON options(poll_id)`,
	`CREATE TABLE IF NOT EXISTS voters (
		poll_id INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		voter_uuid TEXT NOT NULL,
		voted INTEGER NOT NULL DEFAULT 0,
		voted_at TIMESTAMP,
		ip_hash TEXT,
		user_agent TEXT,
		UNIQUE (poll_id, voter_uuid)
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		poll_id INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		option_id INTEGER NOT NULL REFERENCES options(id) ON DELETE CASCADE,
		voter_uuid TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (poll_id, option_id, voter_uuid)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS polls (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS options (
		id BIGSERIAL PRIMARY KEY,
		poll_id BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		label TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_options_poll_id ON options(poll_id)`,
	`CREATE TABLE IF NOT EXISTS voters (
		poll_id BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		voter_uuid TEXT NOT NULL,
		voted INTEGER NOT NULL DEFAULT 0,
		voted_at TIMESTAMPTZ,
		ip_hash TEXT,
		user_agent TEXT,
		UNIQUE (poll_id, voter_uuid)
	)`,
	`CREATE TABLE IF NOT EXISTS votes (
		id BIGSERIAL PRIMARY KEY,
		poll_id BIGINT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		option_id BIGINT NOT NULL REFERENCES options(id) ON DELETE CASCADE,
		voter_uuid TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (poll_id, option_id, voter_uuid)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,
}
