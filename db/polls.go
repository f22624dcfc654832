// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

// SeedPollID is the fixed id of the poll created on first startup.
// Racing seeders collide on it instead of creating a second poll.
const SeedPollID int64 = 1

// GetPoll returns the poll with the given id, or ErrPollNotFound.
func (s *Store) GetPoll(ctx context.Context, pollID int64) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title FROM polls WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title)

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	return poll, nil
}

// ListOptions returns the options of a poll in display order.
// The slice is empty, not nil, when the poll has no options.
func (s *Store) ListOptions(ctx context.Context, pollID int64) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, label
		FROM options
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return options, nil
}

// Seed creates the default poll with optionCount placeholder options when the
// database holds no poll yet. It reports whether anything was inserted.
func (s *Store) Seed(ctx context.Context, title string, optionCount int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var pollCount int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM polls`).Scan(&pollCount); err != nil {
		return false, fmt.Errorf("failed to count polls: %w", err)
	}
	if pollCount > 0 {
		return false, tx.Commit()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO polls (id, title) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, SeedPollID, title)
	if err != nil {
		return false, fmt.Errorf("failed to insert seed poll: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read seed result: %w", err)
	}
	if inserted == 0 {
		// Another process seeded first.
		return false, tx.Commit()
	}

	for i := 1; i <= optionCount; i++ {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO options (poll_id, label) VALUES ($1, $2)
		`, SeedPollID, "Person "+strconv.Itoa(i))
		if err != nil {
			return false, fmt.Errorf("failed to insert seed option: %w", err)
		}
	}

	// Explicit ids do not advance a Postgres sequence.
	if s.dialect == DialectPostgres {
		_, err := tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('polls', 'id'), (SELECT MAX(id) FROM polls))
		`)
		if err != nil {
			return false, fmt.Errorf("failed to advance poll sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("created demo poll", "poll_id", SeedPollID, "title", title, "options", humanize.Comma(int64(optionCount)))
	return true, nil
}
