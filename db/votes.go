// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

// HasVoted reports whether the voter has completed voting on the poll.
func (s *Store) HasVoted(ctx context.Context, pollID int64, voterToken string) (bool, error) {
	var voted int
	err := s.db.QueryRowContext(ctx, `
		SELECT voted FROM voters WHERE poll_id = $1 AND voter_uuid = $2
	`, pollID, voterToken).Scan(&voted)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query voter status: %w", err)
	}

	return voted != 0, nil
}

// SubmitVote admits a ballot at most once per (poll, voter).
//
// Rejections (ErrNoChoices, ErrPollNotFound, ErrInvalidSelection,
// ErrAlreadyVoted) leave the database untouched. On acceptance the voter
// status and one vote row per distinct option are committed together.
// Two racing submissions from the same voter are decided by the unique
// (poll_id, voter_uuid) key: the loser's conditional upsert changes no row.
func (s *Store) SubmitVote(ctx context.Context, ballot models.Ballot) (models.Admission, error) {
	if len(ballot.Choices) == 0 {
		return models.Admission{}, ErrNoChoices
	}

	if _, err := s.GetPoll(ctx, ballot.PollID); err != nil {
		return models.Admission{}, err
	}

	valid, err := s.optionIDs(ctx, ballot.PollID)
	if err != nil {
		return models.Admission{}, err
	}
	for _, optionID := range ballot.Choices {
		if !valid[optionID] {
			return models.Admission{}, ErrInvalidSelection
		}
	}

	voted, err := s.HasVoted(ctx, ballot.PollID, ballot.VoterToken)
	if err != nil {
		return models.Admission{}, err
	}
	if voted {
		return models.Admission{}, ErrAlreadyVoted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Admission{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO voters (poll_id, voter_uuid, voted, voted_at, ip_hash, user_agent)
		VALUES ($1, $2, 1, $3, $4, $5)
		ON CONFLICT (poll_id, voter_uuid) DO UPDATE
		SET voted = 1, voted_at = excluded.voted_at, ip_hash = excluded.ip_hash, user_agent = excluded.user_agent
		WHERE voters.voted = 0
	`, ballot.PollID, ballot.VoterToken, now, nullString(ballot.IPHash), ballot.UserAgent)
	if err != nil {
		return models.Admission{}, fmt.Errorf("failed to mark voter: %w", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return models.Admission{}, fmt.Errorf("failed to read voter update: %w", err)
	}
	if claimed == 0 {
		return models.Admission{}, ErrAlreadyVoted
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO votes (poll_id, option_id, voter_uuid, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll_id, option_id, voter_uuid) DO NOTHING
	`)
	if err != nil {
		return models.Admission{}, fmt.Errorf("failed to prepare vote insert: %w", err)
	}
	defer insert.Close()

	recorded := 0
	for _, optionID := range ballot.Choices {
		res, err := insert.ExecContext(ctx, ballot.PollID, optionID, ballot.VoterToken, now)
		if err != nil {
			return models.Admission{}, fmt.Errorf("failed to insert vote: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return models.Admission{}, fmt.Errorf("failed to read vote insert: %w", err)
		}
		recorded += int(n)
	}

	if err := tx.Commit(); err != nil {
		return models.Admission{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return models.Admission{
		PollID:   ballot.PollID,
		Recorded: recorded,
		VotedAt:  now,
	}, nil
}

// ResetVotes removes every vote and voter status of a poll.
// It returns the number of vote rows deleted.
func (s *Store) ResetVotes(ctx context.Context, pollID int64) (int64, error) {
	if _, err := s.GetPoll(ctx, pollID); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, pollID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read vote delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM voters WHERE poll_id = $1`, pollID); err != nil {
		return 0, fmt.Errorf("failed to delete voters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reset: %w", err)
	}

	return deleted, nil
}

func (s *Store) optionIDs(ctx context.Context, pollID int64) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM options WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	valid := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		valid[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return valid, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
