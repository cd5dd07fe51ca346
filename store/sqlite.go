// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/identity"
)

// SQLiteStore persists approvals in sqlite. Timestamps are stored as
// RFC 3339 text and voter sets as JSON arrays.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open sqlite connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Insert(ctx context.Context, a *approval.Approval) error {
	approvedBy, disapprovedBy, err := encodeVoters(a)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO approval (message_id, action, url, reason, requested_by,
			approvals, disapprovals, approved_by, disapproved_by, outcome,
			total_eligible, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(a.MessageID), a.Action, a.URL, a.Reason, string(a.Requester),
		a.Approvals, a.Disapprovals, approvedBy, disapprovedBy, string(a.Outcome),
		a.TotalEligible, encodeTime(a.EndTime), encodeTime(a.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMessageID
		}
		return fmt.Errorf("failed to insert approval: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted approval ID: %w", err)
	}
	a.ID = id
	return nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (*approval.Approval, error) {
	row := s.db.QueryRowContext(ctx, selectSQLite+` WHERE id = ?`, id)
	return scanSQLiteApproval(row)
}

func (s *SQLiteStore) FindByMessageID(ctx context.Context, messageID int64) (*approval.Approval, error) {
	row := s.db.QueryRowContext(ctx, selectSQLite+` WHERE message_id = ?`, messageID)
	return scanSQLiteApproval(row)
}

func (s *SQLiteStore) Update(ctx context.Context, a *approval.Approval) error {
	if a.ID == 0 {
		return fmt.Errorf("%w: approval has no ID", ErrInvalidState)
	}
	approvedBy, disapprovedBy, err := encodeVoters(a)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE approval
		SET approvals = ?, disapprovals = ?, approved_by = ?, disapproved_by = ?,
			outcome = ?, end_time = ?
		WHERE id = ?`,
		a.Approvals, a.Disapprovals, approvedBy, disapprovedBy,
		string(a.Outcome), encodeTime(a.EndTime), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) SetMessageID(ctx context.Context, id, messageID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE approval SET message_id = ? WHERE id = ?`, messageID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMessageID
		}
		return fmt.Errorf("failed to attach message: %w", err)
	}
	return requireRow(res)
}

func (s *SQLiteStore) List(ctx context.Context, f ListFilter) ([]*approval.Approval, error) {
	query, args := buildListQuery(selectSQLite, f, sqlitePlaceholder)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var out []*approval.Approval
	for rows.Next() {
		a, err := scanSQLiteApproval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) InsertVoteEvent(ctx context.Context, ev VoteEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_event (id, approval_id, voter, choice, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.ApprovalID, string(ev.Voter), string(ev.Choice), encodeTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert vote event: %w", err)
	}
	return nil
}

const selectSQLite = `
	SELECT id, message_id, action, url, reason, requested_by,
		approvals, disapprovals, approved_by, disapproved_by, outcome,
		total_eligible, end_time, created_at
	FROM approval`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteApproval(row rowScanner) (*approval.Approval, error) {
	var (
		a             approval.Approval
		messageID     sql.NullInt64
		requester     string
		approvedBy    string
		disapprovedBy string
		outcome       string
		endTime       string
		createdAt     string
	)

	err := row.Scan(&a.ID, &messageID, &a.Action, &a.URL, &a.Reason, &requester,
		&a.Approvals, &a.Disapprovals, &approvedBy, &disapprovedBy, &outcome,
		&a.TotalEligible, &endTime, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan approval: %w", err)
	}

	a.MessageID = messageID.Int64
	a.Requester = identity.Identity(requester)

	if a.Outcome, err = approval.ParseOutcome(outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if a.ApprovedBy, err = decodeVoters(approvedBy); err != nil {
		return nil, fmt.Errorf("%w: approved_by: %v", ErrInvalidState, err)
	}
	if a.DisapprovedBy, err = decodeVoters(disapprovedBy); err != nil {
		return nil, fmt.Errorf("%w: disapproved_by: %v", ErrInvalidState, err)
	}
	if a.EndTime, err = decodeTime(endTime); err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidState, err)
	}
	if a.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, fmt.Errorf("%w: created_at: %v", ErrInvalidState, err)
	}

	return &a, nil
}

func encodeVoters(a *approval.Approval) (approvedBy, disapprovedBy string, err error) {
	ab, err := json.Marshal(voterStrings(a.ApprovedBy))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode approved_by: %w", err)
	}
	db, err := json.Marshal(voterStrings(a.DisapprovedBy))
	if err != nil {
		return "", "", fmt.Errorf("failed to encode disapproved_by: %w", err)
	}
	return string(ab), string(db), nil
}

func voterStrings(list []identity.Identity) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, string(v))
	}
	return out
}

func decodeVoters(data string) ([]identity.Identity, error) {
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, err
	}
	out := make([]identity.Identity, 0, len(names))
	for _, n := range names {
		out = append(out, identity.Identity(n))
	}
	return out, nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullableID maps a zero message ID to NULL so the UNIQUE constraint
// ignores approvals with no attached message.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation detects duplicate-key failures from both drivers
// without importing their error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key")
}

// buildListQuery appends WHERE/ORDER BY/LIMIT clauses to a base SELECT.
// placeholder renders the n-th positional parameter for the driver.
func buildListQuery(base string, f ListFilter, placeholder func(n int) string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = %s", column, placeholder(len(args))))
	}

	if f.Outcome != "" {
		add("outcome", string(f.Outcome))
	}
	if f.RequestedBy != "" {
		add("requested_by", string(f.RequestedBy))
	}
	if f.URL != "" {
		add("url", f.URL)
	}
	if f.Action != "" {
		add("action", f.Action)
	}

	query := base
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT " + placeholder(len(args))
	}
	return query, args
}

func sqlitePlaceholder(int) string { return "?" }
