// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/approval-bot/identity"
)

func newTestApproval(t *testing.T, eligible int) *Approval {
	t.Helper()
	endTime := time.Now().Add(time.Hour)
	return New("ban", "https://example.com/post/1", "spam", "requester#0001", eligible, endTime)
}

// checkInvariants verifies that counts match set sizes and no voter appears
// on both sides.
func checkInvariants(t *testing.T, a *Approval) {
	t.Helper()

	if a.Approvals != len(a.ApprovedBy) {
		t.Errorf("Approvals=%d but len(ApprovedBy)=%d", a.Approvals, len(a.ApprovedBy))
	}
	if a.Disapprovals != len(a.DisapprovedBy) {
		t.Errorf("Disapprovals=%d but len(DisapprovedBy)=%d", a.Disapprovals, len(a.DisapprovedBy))
	}
	if a.Approvals < 0 || a.Disapprovals < 0 {
		t.Errorf("negative counts: %d/%d", a.Approvals, a.Disapprovals)
	}

	seen := make(map[identity.Identity]bool)
	for _, v := range a.ApprovedBy {
		if seen[v] {
			t.Errorf("duplicate approver %q", v)
		}
		seen[v] = true
	}
	for _, v := range a.DisapprovedBy {
		if seen[v] {
			t.Errorf("voter %q appears on both sides or twice", v)
		}
		seen[v] = true
	}
}

func TestNewApproval(t *testing.T) {
	a := newTestApproval(t, 4)

	if a.Approvals != 0 || a.Disapprovals != 0 {
		t.Errorf("Expected zero counts, got %d/%d", a.Approvals, a.Disapprovals)
	}
	if a.Outcome != OutcomeUnknown {
		t.Errorf("Expected UNKNOWN outcome, got %s", a.Outcome)
	}
	if a.ID != 0 {
		t.Errorf("Expected unset ID, got %d", a.ID)
	}
	if a.TotalEligible != 4 {
		t.Errorf("Expected TotalEligible=4, got %d", a.TotalEligible)
	}
}

func TestCastVote(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name             string
		votes            []struct {
			voter  identity.Identity
			choice Choice
		}
		wantApprovals    int
		wantDisapprovals int
		wantOutcome      Outcome
	}{
		{
			name: "single approve",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceApprove},
			},
			wantApprovals:    1,
			wantDisapprovals: 0,
			wantOutcome:      OutcomeApprovedNoMajority,
		},
		{
			name: "same choice twice is idempotent",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceApprove},
				{"alice#0001", ChoiceApprove},
			},
			wantApprovals:    1,
			wantDisapprovals: 0,
			wantOutcome:      OutcomeApprovedNoMajority,
		},
		{
			name: "switch disapprove to approve",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceDisapprove},
				{"alice#0001", ChoiceApprove},
			},
			wantApprovals:    1,
			wantDisapprovals: 0,
			wantOutcome:      OutcomeApprovedNoMajority,
		},
		{
			name: "switch approve to disapprove",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceApprove},
				{"alice#0001", ChoiceDisapprove},
			},
			wantApprovals:    0,
			wantDisapprovals: 1,
			wantOutcome:      OutcomeDisapprovedNoMajority,
		},
		{
			name: "one each side is a tie",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceApprove},
				{"bob#0002", ChoiceDisapprove},
			},
			wantApprovals:    1,
			wantDisapprovals: 1,
			wantOutcome:      OutcomeTie,
		},
		{
			name: "three approvals reach majority of four",
			votes: []struct {
				voter  identity.Identity
				choice Choice
			}{
				{"alice#0001", ChoiceApprove},
				{"bob#0002", ChoiceApprove},
				{"carol#0003", ChoiceApprove},
			},
			wantApprovals:    3,
			wantDisapprovals: 0,
			wantOutcome:      OutcomeApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApproval(t, 4)

			for _, v := range tt.votes {
				if _, _, err := a.CastVote(v.voter, v.choice, now, 4); err != nil {
					t.Fatalf("CastVote(%s, %s) failed: %v", v.voter, v.choice, err)
				}
				checkInvariants(t, a)
			}

			if a.Approvals != tt.wantApprovals {
				t.Errorf("Expected %d approvals, got %d", tt.wantApprovals, a.Approvals)
			}
			if a.Disapprovals != tt.wantDisapprovals {
				t.Errorf("Expected %d disapprovals, got %d", tt.wantDisapprovals, a.Disapprovals)
			}
			if a.Outcome != tt.wantOutcome {
				t.Errorf("Expected outcome %s, got %s", tt.wantOutcome, a.Outcome)
			}
		})
	}
}

func TestCastVoteSwitchMovesVoterBetweenSets(t *testing.T) {
	a := newTestApproval(t, 5)
	now := time.Now()

	a.CastVote("bob#0002", ChoiceDisapprove, now, 5)
	a.CastVote("carol#0003", ChoiceDisapprove, now, 5)

	disapprovalsBefore := a.Disapprovals

	// Bob changes his mind.
	approvals, disapprovals, err := a.CastVote("bob#0002", ChoiceApprove, now, 5)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if approvals != 1 {
		t.Errorf("Expected 1 approval after switch, got %d", approvals)
	}
	if disapprovals != disapprovalsBefore-1 {
		t.Errorf("Expected disapprovals to drop by 1 (from %d), got %d", disapprovalsBefore, disapprovals)
	}
	if !hasVoter(a.ApprovedBy, "bob#0002") {
		t.Error("Expected bob in approvers after switch")
	}
	if hasVoter(a.DisapprovedBy, "bob#0002") {
		t.Error("Expected bob removed from disapprovers after switch")
	}
	checkInvariants(t, a)
}

func TestCastVoteCountsDistinctVoters(t *testing.T) {
	a := newTestApproval(t, 10)
	now := time.Now()

	voters := []identity.Identity{"a#1", "b#2", "c#3", "d#4", "e#5"}
	for i, v := range voters {
		choice := ChoiceApprove
		if i%2 == 1 {
			choice = ChoiceDisapprove
		}
		if _, _, err := a.CastVote(v, choice, now, 10); err != nil {
			t.Fatalf("CastVote failed: %v", err)
		}
	}

	// Some repeat and switched votes on top.
	a.CastVote("a#1", ChoiceApprove, now, 10)
	a.CastVote("b#2", ChoiceApprove, now, 10)
	a.CastVote("b#2", ChoiceDisapprove, now, 10)

	if got := a.Approvals + a.Disapprovals; got != len(voters) {
		t.Errorf("Expected total votes == %d distinct voters, got %d", len(voters), got)
	}
	checkInvariants(t, a)
}

func TestCastVoteExpired(t *testing.T) {
	a := newTestApproval(t, 4)
	now := time.Now()

	a.CastVote("alice#0001", ChoiceApprove, now, 4)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"exactly at end time", a.EndTime},
		{"after end time", a.EndTime.Add(time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approvals, disapprovals, err := a.CastVote("bob#0002", ChoiceApprove, tt.now, 4)
			if !errors.Is(err, ErrExpired) {
				t.Fatalf("Expected ErrExpired, got %v", err)
			}
			if approvals != 1 || disapprovals != 0 {
				t.Errorf("Counts mutated on expired vote: %d/%d", approvals, disapprovals)
			}
			if a.HasVoted("bob#0002") {
				t.Error("Expired vote must not be recorded")
			}
			if a.Outcome != OutcomeApprovedNoMajority {
				t.Errorf("Outcome mutated on expired vote: %s", a.Outcome)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	a := newTestApproval(t, 4)

	if a.IsExpired(a.EndTime.Add(-time.Second)) {
		t.Error("Expected not expired one second before end time")
	}
	if !a.IsExpired(a.EndTime) {
		t.Error("Expected expired exactly at end time")
	}
	if !a.IsExpired(a.EndTime.Add(time.Second)) {
		t.Error("Expected expired after end time")
	}
}

func TestCancel(t *testing.T) {
	a := newTestApproval(t, 4)
	now := time.Now()

	a.CastVote("alice#0001", ChoiceApprove, now, 4)
	a.Cancel(now)

	if a.Outcome != OutcomeCancelled {
		t.Errorf("Expected CANCELLED, got %s", a.Outcome)
	}
	if !a.IsExpired(now) {
		t.Error("Expected cancellation to end voting immediately")
	}

	// Further votes are rejected and the outcome stays pinned.
	if _, _, err := a.CastVote("bob#0002", ChoiceApprove, now.Add(time.Second), 4); !errors.Is(err, ErrExpired) {
		t.Fatalf("Expected ErrExpired after cancel, got %v", err)
	}
	if a.Outcome != OutcomeCancelled {
		t.Errorf("Outcome changed after cancel: %s", a.Outcome)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    Choice
		wantErr bool
	}{
		{"approve", ChoiceApprove, false},
		{"Approval", ChoiceApprove, false},
		{"APPROVALS", ChoiceApprove, false},
		{"yes", ChoiceApprove, false},
		{"disapprove", ChoiceDisapprove, false},
		{"disapproval", ChoiceDisapprove, false},
		{"no", ChoiceDisapprove, false},
		{" approve ", ChoiceApprove, false},
		{"maybe", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChoice(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChoice(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseChoice(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
