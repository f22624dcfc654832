// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote is an anonymous multi-select poll. Visitors are identified by a
voter_uuid cookie, may pick any number of options once, and everybody can
watch the live tallies.

# Starting the Server

With no configuration the server listens on 3000 and stores everything in
./votes.db:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

A .env file in the working directory is loaded first; real environment
variables and flags take precedence over it.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret guarding DELETE /poll/{id}/votes
  - IP_HASH_SALT (--ip-salt): Key for stored client IP hashes (random when unset)
  - SEED_TITLE, SEED_OPTIONS: Demo poll created on first start
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json handler

# Architecture

  - handlers: Poll view, vote submission, results, vote reset
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, voter token, JSON helpers
  - models: Request/response and domain types
  - auth: Voter tokens, cookies, admin keys
  - db: Schema, seeding, vote admission, results
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
