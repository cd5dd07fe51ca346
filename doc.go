// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the approval-bot API server.

approval-bot backs a moderator approval-vote workflow: a staff member
requests sign-off on a moderation action (ban, kick, content removal),
eligible voters approve or disapprove, and the server tracks when a
side reaches the majority number (more than half of the eligible
roster).

# Starting the Server

The server runs on sqlite out of the box:

	go run main.go

Or against postgres:

	go run main.go -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Optional settings (flags fall back to env vars):

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): sqlite path or postgres connection string
  - CONFIG_FILE (-c): roster YAML path (default: config.yml)
  - APPROVAL_END_MINUTES (-expire-minutes): default voting window

# Architecture

The server uses a handler-based architecture with dependency injection:

  - approval: Vote ledger, outcome classification, majority arithmetic
  - roster: Moderator/admin lists and voting policy (YAML-backed)
  - identity: Caller identity parsing from the X-Identity header
  - store: sqlite/postgres persistence behind one interface
  - handlers: HTTP request handlers (approvals, votes, roster)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging and JSON helpers
  - models: Request/response types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
