// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the chosen driver:

	if err := db.CreateSchema(conn, db.DriverSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Separate schema constants exist for sqlite and postgres because the two
disagree on key generation (AUTOINCREMENT vs BIGSERIAL) and timestamp
columns (TEXT holding RFC 3339 vs TIMESTAMPTZ).

# Tables

The schema includes:

  - approval: One row per approval request with its live vote state
  - vote_event: Append-only audit trail of accepted votes

# Relationships

	approval 1──* vote_event

Approval rows are never deleted, so vote_event foreign keys do not cascade.

# Indexes

Performance indexes on:

  - approval.message_id (unique)
  - approval.outcome
  - approval.created_at
  - approval.requested_by
  - approval.url
  - approval.action
  - vote_event.approval_id
*/
package db
