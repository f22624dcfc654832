// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite file path or PostgreSQL connection string (default: ./votes.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC; empty leaves vote reset unguarded
  - IPHashSalt: Key for the stored client IP hashes; random per start when unset
  - SeedTitle: Title of the poll created on first start (default: Vote Your Favourites)
  - SeedOptions: Number of placeholder options in that poll (default: 19)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-admin-salt    Admin key salt
	-ip-salt       IP hash salt
	-seed-title    Seed poll title
	-seed-options  Seed option count
	-log-level     Log level
	-log-format    Log format

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	IP_HASH_SALT   → -ip-salt
	SEED_TITLE     → -seed-title
	SEED_OPTIONS   → -seed-options
	LOG_LEVEL      → -log-level
	LOG_FORMAT     → -log-format

CLI flags take precedence over environment variables, and environment
variables take precedence over a .env file.

# Validation

ParseFlags returns an error for malformed values and when postgres is
selected without a DATABASE_URL.
*/
package cliparse
