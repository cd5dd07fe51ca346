// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists approval requests and their vote audit trail.

# Store Interface

Handlers depend on the Store interface, never on a concrete driver:

	st, err := store.New(conn, cfg.DatabaseType)
	a, err := st.FindByID(ctx, 42)

Two implementations exist. SQLiteStore is the default deployment target
and the one the test suite runs against; PostgresStore serves larger
installs. They differ only in SQL dialect details:

  - placeholders: ? vs $1
  - inserted IDs: LastInsertId vs INSERT ... RETURNING id
  - timestamps: RFC 3339 text columns vs TIMESTAMPTZ

Voter sets are stored as JSON arrays of identity strings in both.

# Error Taxonomy

Lookups return ErrNotFound for a missing approval. SetMessageID and
Insert return ErrDuplicateMessageID when the chat message is already
attached to another approval. Rows that fail to decode surface
ErrInvalidState so a corrupted row reads as a server fault, not a 404.
*/
package store
