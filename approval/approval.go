// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/approval-bot/identity"
)

// ErrExpired is returned when a vote arrives at or after the request's end
// time. The ledger is left untouched.
var ErrExpired = errors.New("approval request has ended")

// Choice is a single vote direction.
type Choice string

const (
	ChoiceApprove    Choice = "approve"
	ChoiceDisapprove Choice = "disapprove"
)

// ParseChoice resolves a choice label, accepting the plural and noun forms
// the buttons and older payloads used.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approval", "approvals", "yes":
		return ChoiceApprove, nil
	case "disapprove", "disapproval", "disapprovals", "no":
		return ChoiceDisapprove, nil
	}
	return "", fmt.Errorf("unknown vote choice %q", s)
}

func (c Choice) String() string { return string(c) }

// Approval is one moderator approval request: the vote ledger for a single
// proposed action. All vote mutation goes through CastVote; persistence is
// the caller's concern.
type Approval struct {
	// ID is assigned by storage; zero until the request is first persisted.
	ID int64
	// MessageID correlates the request with the chat message carrying the
	// vote buttons. Zero until the chat layer attaches it.
	MessageID int64

	Action    string
	URL       string
	Reason    string
	Requester identity.Identity

	Approvals     int
	Disapprovals  int
	ApprovedBy    []identity.Identity
	DisapprovedBy []identity.Identity
	Outcome       Outcome

	// TotalEligible is the eligible voter count captured at creation time.
	// It is retained for audit; live majority checks recompute the total
	// from the current roster instead.
	TotalEligible int

	EndTime   time.Time
	CreatedAt time.Time
}

// New constructs an unsaved approval request with zero counts and an
// undecided outcome.
func New(action, url, reason string, requester identity.Identity, totalEligible int, endTime time.Time) *Approval {
	return &Approval{
		Action:        action,
		URL:           url,
		Reason:        reason,
		Requester:     requester,
		Outcome:       OutcomeUnknown,
		TotalEligible: totalEligible,
		EndTime:       endTime,
		CreatedAt:     time.Now().UTC(),
	}
}

// IsExpired reports whether voting has ended as of now.
func (a *Approval) IsExpired(now time.Time) bool {
	return !now.Before(a.EndTime)
}

// CastVote records one vote by voter and returns the updated counts.
//
// Voting the same choice twice is a no-op. Voting the opposite choice
// removes the previous vote first, so an identity is never present on both
// sides and each count always equals the size of its voter set. The outcome
// is recomputed with eligibleTotal after every accepted call.
//
// Returns ErrExpired without mutating anything when now is at or past the
// end time.
func (a *Approval) CastVote(voter identity.Identity, choice Choice, now time.Time, eligibleTotal int) (approvals, disapprovals int, err error) {
	if a.IsExpired(now) {
		return a.Approvals, a.Disapprovals, ErrExpired
	}

	switch choice {
	case ChoiceApprove:
		if !hasVoter(a.ApprovedBy, voter) {
			if removeVoter(&a.DisapprovedBy, voter) {
				a.Disapprovals--
			}
			a.ApprovedBy = append(a.ApprovedBy, voter)
			a.Approvals++
		}
	case ChoiceDisapprove:
		if !hasVoter(a.DisapprovedBy, voter) {
			if removeVoter(&a.ApprovedBy, voter) {
				a.Approvals--
			}
			a.DisapprovedBy = append(a.DisapprovedBy, voter)
			a.Disapprovals++
		}
	default:
		return a.Approvals, a.Disapprovals, fmt.Errorf("unknown vote choice %q", choice)
	}

	a.Outcome = Evaluate(a.Approvals, a.Disapprovals, eligibleTotal).Outcome
	return a.Approvals, a.Disapprovals, nil
}

// Cancel finalizes the request with the CANCELLED outcome and ends voting
// immediately.
func (a *Approval) Cancel(now time.Time) {
	a.Outcome = OutcomeCancelled
	a.EndTime = now.UTC()
}

// HasVoted reports whether voter has a recorded vote on either side.
func (a *Approval) HasVoted(voter identity.Identity) bool {
	return hasVoter(a.ApprovedBy, voter) || hasVoter(a.DisapprovedBy, voter)
}

func hasVoter(list []identity.Identity, voter identity.Identity) bool {
	for _, v := range list {
		if v == voter {
			return true
		}
	}
	return false
}

// removeVoter deletes voter from list in place, preserving order, and
// reports whether it was present.
func removeVoter(list *[]identity.Identity, voter identity.Identity) bool {
	for i, v := range *list {
		if v == voter {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
