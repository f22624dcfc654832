// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the relational store: schema, seeding, vote admission and
result aggregation.

# Lifecycle

A Store is opened once in main, handed to the router, and closed on shutdown:

	store, err := db.Open(ctx, db.DialectSQLite, "./votes.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatal(err)
	}
	if _, err := store.Seed(ctx, models.DefaultPollTitle, models.DefaultOptionCount); err != nil {
		log.Fatal(err)
	}

Both SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq) are supported. All
queries use $N placeholders, which both drivers accept.

# Tables

  - polls: id, title
  - options: id, poll_id, label
  - voters: one row per (poll_id, voter_uuid), voted flag plus audit columns
  - votes: one row per (poll_id, option_id, voter_uuid)

# Vote Admission

SubmitVote validates the choices, then in one transaction claims the voter
row with a conditional upsert and inserts the votes with ON CONFLICT DO
NOTHING. The unique keys make the outcome hold across processes sharing the
database, not just goroutines in one server.

# Errors

	ErrPollNotFound     → 404
	ErrNoChoices        → 400
	ErrInvalidSelection → 400
	ErrAlreadyVoted     → 403

Any other error is a storage failure.
*/
package db
