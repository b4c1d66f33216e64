// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8484)
  - DatabaseURL: Connection string, or a file path for sqlite
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for presenter key HMAC (required)
  - JoinCodeSalt: Secret for join code generation (required)

# CLI Flags

	-p            Server port
	-d            Database URL or sqlite file path
	-t            Database type
	--admin-salt  Admin key salt
	--join-salt   Join code salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → --admin-salt
	JOIN_CODE_SALT → --join-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided for postgres (sqlite defaults to slidepulse.db)
  - ADMIN_KEY_SALT must be provided
  - JOIN_CODE_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg, qnaStore, guessStore, hub)
*/
package cliparse
