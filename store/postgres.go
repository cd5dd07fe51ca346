// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/identity"
)

// PostgresStore persists approvals in postgres. Unlike sqlite, timestamps
// go into TIMESTAMPTZ columns directly and inserted IDs come back through
// RETURNING because lib/pq does not support LastInsertId.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open postgres connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, a *approval.Approval) error {
	approvedBy, disapprovedBy, err := encodeVoters(a)
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO approval (message_id, action, url, reason, requested_by,
			approvals, disapprovals, approved_by, disapproved_by, outcome,
			total_eligible, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		nullableID(a.MessageID), a.Action, a.URL, a.Reason, string(a.Requester),
		a.Approvals, a.Disapprovals, approvedBy, disapprovedBy, string(a.Outcome),
		a.TotalEligible, a.EndTime.UTC(), a.CreatedAt.UTC()).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMessageID
		}
		return fmt.Errorf("failed to insert approval: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*approval.Approval, error) {
	row := s.db.QueryRowContext(ctx, selectPostgres+` WHERE id = $1`, id)
	return scanPostgresApproval(row)
}

func (s *PostgresStore) FindByMessageID(ctx context.Context, messageID int64) (*approval.Approval, error) {
	row := s.db.QueryRowContext(ctx, selectPostgres+` WHERE message_id = $1`, messageID)
	return scanPostgresApproval(row)
}

func (s *PostgresStore) Update(ctx context.Context, a *approval.Approval) error {
	if a.ID == 0 {
		return fmt.Errorf("%w: approval has no ID", ErrInvalidState)
	}
	approvedBy, disapprovedBy, err := encodeVoters(a)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE approval
		SET approvals = $1, disapprovals = $2, approved_by = $3, disapproved_by = $4,
			outcome = $5, end_time = $6
		WHERE id = $7`,
		a.Approvals, a.Disapprovals, approvedBy, disapprovedBy,
		string(a.Outcome), a.EndTime.UTC(), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) SetMessageID(ctx context.Context, id, messageID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE approval SET message_id = $1 WHERE id = $2`, messageID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMessageID
		}
		return fmt.Errorf("failed to attach message: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) List(ctx context.Context, f ListFilter) ([]*approval.Approval, error) {
	query, args := buildListQuery(selectPostgres, f, postgresPlaceholder)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var out []*approval.Approval
	for rows.Next() {
		a, err := scanPostgresApproval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) InsertVoteEvent(ctx context.Context, ev VoteEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_event (id, approval_id, voter, choice, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.ApprovalID, string(ev.Voter), string(ev.Choice), ev.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert vote event: %w", err)
	}
	return nil
}

const selectPostgres = `
	SELECT id, message_id, action, url, reason, requested_by,
		approvals, disapprovals, approved_by, disapproved_by, outcome,
		total_eligible, end_time, created_at
	FROM approval`

func scanPostgresApproval(row rowScanner) (*approval.Approval, error) {
	var (
		a             approval.Approval
		messageID     sql.NullInt64
		requester     string
		approvedBy    string
		disapprovedBy string
		outcome       string
	)

	err := row.Scan(&a.ID, &messageID, &a.Action, &a.URL, &a.Reason, &requester,
		&a.Approvals, &a.Disapprovals, &approvedBy, &disapprovedBy, &outcome,
		&a.TotalEligible, &a.EndTime, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan approval: %w", err)
	}

	a.MessageID = messageID.Int64
	a.Requester = identity.Identity(requester)
	a.EndTime = a.EndTime.UTC()
	a.CreatedAt = a.CreatedAt.UTC()

	if a.Outcome, err = approval.ParseOutcome(outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if a.ApprovedBy, err = decodeVoters(approvedBy); err != nil {
		return nil, fmt.Errorf("%w: approved_by: %v", ErrInvalidState, err)
	}
	if a.DisapprovedBy, err = decodeVoters(disapprovedBy); err != nil {
		return nil, fmt.Errorf("%w: disapproved_by: %v", ErrInvalidState, err)
	}

	return &a, nil
}

func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }
