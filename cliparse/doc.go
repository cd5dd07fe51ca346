// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file path or postgres connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - ConfigFile: roster YAML path (default: config.yml)
  - ExpireMinutes: default voting window for new approvals (default: 60)

# CLI Flags

	-p              Server port
	-d              Database URL or sqlite file path
	-t              Database type
	-c              Roster config file
	-expire-minutes Default voting window in minutes

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	CONFIG_FILE          → -c
	APPROVAL_END_MINUTES → -expire-minutes

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if values are missing or malformed:

  - DatabaseType must be sqlite or postgres
  - DATABASE_URL must be provided when the type is postgres
  - the voting window must be positive

The sqlite type needs no URL; it falls back to approvals.sqlite3 in the
working directory.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(st, rst, cfg)
*/
package cliparse
