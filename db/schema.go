// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Driver names accepted by CreateSchema and the -t flag.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = sqliteSchema
	case DriverPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Approval requests. Rows are never deleted; cancelled and expired
-- requests stay around as the audit record.
CREATE TABLE IF NOT EXISTS approval (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id INTEGER UNIQUE,
    action TEXT NOT NULL,
    url TEXT NOT NULL,
    reason TEXT NOT NULL,
    requested_by TEXT NOT NULL,
    approvals INTEGER NOT NULL DEFAULT 0,
    disapprovals INTEGER NOT NULL DEFAULT 0,
    approved_by TEXT NOT NULL DEFAULT '[]',
    disapproved_by TEXT NOT NULL DEFAULT '[]',
    outcome TEXT NOT NULL DEFAULT 'UNKNOWN',
    total_eligible INTEGER NOT NULL DEFAULT 0,
    end_time TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_approval_outcome ON approval(outcome);
CREATE INDEX IF NOT EXISTS idx_approval_created_at ON approval(created_at);
CREATE INDEX IF NOT EXISTS idx_approval_requested_by ON approval(requested_by);
CREATE INDEX IF NOT EXISTS idx_approval_url ON approval(url);
CREATE INDEX IF NOT EXISTS idx_approval_action ON approval(action);

-- Vote audit trail, append-only. One row per accepted vote that changed
-- the counts.
CREATE TABLE IF NOT EXISTS vote_event (
    id TEXT PRIMARY KEY,
    approval_id INTEGER NOT NULL REFERENCES approval(id),
    voter TEXT NOT NULL,
    choice TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_event_approval_id ON vote_event(approval_id);
`

const postgresSchema = `
-- Approval requests. Rows are never deleted; cancelled and expired
-- requests stay around as the audit record.
CREATE TABLE IF NOT EXISTS approval (
    id BIGSERIAL PRIMARY KEY,
    message_id BIGINT UNIQUE,
    action TEXT NOT NULL,
    url TEXT NOT NULL,
    reason TEXT NOT NULL,
    requested_by TEXT NOT NULL,
    approvals INTEGER NOT NULL DEFAULT 0,
    disapprovals INTEGER NOT NULL DEFAULT 0,
    approved_by TEXT NOT NULL DEFAULT '[]',
    disapproved_by TEXT NOT NULL DEFAULT '[]',
    outcome TEXT NOT NULL DEFAULT 'UNKNOWN',
    total_eligible INTEGER NOT NULL DEFAULT 0,
    end_time TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_approval_outcome ON approval(outcome);
CREATE INDEX IF NOT EXISTS idx_approval_created_at ON approval(created_at);
CREATE INDEX IF NOT EXISTS idx_approval_requested_by ON approval(requested_by);
CREATE INDEX IF NOT EXISTS idx_approval_url ON approval(url);
CREATE INDEX IF NOT EXISTS idx_approval_action ON approval(action);

-- Vote audit trail, append-only. One row per accepted vote that changed
-- the counts.
CREATE TABLE IF NOT EXISTS vote_event (
    id TEXT PRIMARY KEY,
    approval_id BIGINT NOT NULL REFERENCES approval(id),
    voter TEXT NOT NULL,
    choice TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_event_approval_id ON vote_event(approval_id);
`
