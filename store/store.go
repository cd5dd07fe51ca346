// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/db"
	"github.com/danielhkuo/approval-bot/identity"
)

var (
	// ErrNotFound is returned when no approval matches the lookup key.
	ErrNotFound = errors.New("approval not found")
	// ErrDuplicateMessageID is returned when the message ID is already
	// attached to another approval.
	ErrDuplicateMessageID = errors.New("message ID already attached to an approval")
	// ErrInvalidState is returned when a stored row cannot be decoded.
	ErrInvalidState = errors.New("stored approval state is invalid")
)

// VoteEvent is one accepted vote, recorded for the audit trail.
type VoteEvent struct {
	ID         string
	ApprovalID int64
	Voter      identity.Identity
	Choice     approval.Choice
	CreatedAt  time.Time
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Outcome     approval.Outcome
	RequestedBy identity.Identity
	URL         string
	Action      string
	Limit       int
}

// Store persists approvals and their vote audit trail.
type Store interface {
	// Insert stores a new approval and fills in its assigned ID.
	Insert(ctx context.Context, a *approval.Approval) error
	// FindByID returns the approval with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*approval.Approval, error)
	// FindByMessageID returns the approval attached to the given chat
	// message, or ErrNotFound.
	FindByMessageID(ctx context.Context, messageID int64) (*approval.Approval, error)
	// Update overwrites the stored vote state, outcome, and end time of
	// an existing approval.
	Update(ctx context.Context, a *approval.Approval) error
	// SetMessageID attaches a chat message to an approval. Returns
	// ErrDuplicateMessageID if the message is attached elsewhere.
	SetMessageID(ctx context.Context, id, messageID int64) error
	// List returns approvals matching the filter, newest first.
	List(ctx context.Context, f ListFilter) ([]*approval.Approval, error)
	// InsertVoteEvent appends one row to the vote audit trail.
	InsertVoteEvent(ctx context.Context, ev VoteEvent) error
}

// New returns the Store implementation for the configured driver.
func New(conn *sql.DB, driver string) (Store, error) {
	switch driver {
	case db.DriverSQLite:
		return NewSQLiteStore(conn), nil
	case db.DriverPostgres:
		return NewPostgresStore(conn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
