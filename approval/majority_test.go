// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

import "testing"

func TestMajorityNumber(t *testing.T) {
	tests := []struct {
		eligible int
		want     int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{6, 4},
		{7, 4},
	}

	for _, tt := range tests {
		if got := MajorityNumber(tt.eligible); got != tt.want {
			t.Errorf("MajorityNumber(%d) = %d, want %d", tt.eligible, got, tt.want)
		}
	}

	// Monotonically non-decreasing in the eligible total.
	prev := MajorityNumber(0)
	for n := 1; n <= 50; n++ {
		cur := MajorityNumber(n)
		if cur < prev {
			t.Fatalf("MajorityNumber decreased at %d: %d -> %d", n, prev, cur)
		}
		prev = cur
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		approvals      int
		disapprovals   int
		eligible       int
		wantMajority   int
		wantByCount    Side
		wantByMajority Side
		wantOutcome    Outcome
	}{
		{"no votes yet", 0, 0, 4, 3, SideNone, SideNone, OutcomeUnknown},
		{"approval majority", 3, 0, 4, 3, SideApproval, SideApproval, OutcomeApproved},
		{"approval without majority", 2, 0, 4, 3, SideApproval, SideNone, OutcomeApprovedNoMajority},
		{"approval leads without majority", 2, 1, 4, 3, SideApproval, SideNone, OutcomeApprovedNoMajority},
		{"true tie", 2, 2, 4, 3, SideNone, SideNone, OutcomeTie},
		{"disapproval majority", 0, 3, 4, 3, SideDisapproval, SideDisapproval, OutcomeDisapproved},
		{"disapproval without majority", 1, 2, 4, 3, SideDisapproval, SideNone, OutcomeDisapprovedNoMajority},
		{"majority beats count on mixed vote", 3, 1, 4, 3, SideApproval, SideApproval, OutcomeApproved},
		{"single eligible voter", 1, 0, 1, 1, SideApproval, SideApproval, OutcomeApproved},
		{"zero eligible still needs one vote", 1, 0, 0, 1, SideApproval, SideApproval, OutcomeApproved},
		{"five eligible needs three", 2, 0, 5, 3, SideApproval, SideNone, OutcomeApprovedNoMajority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.approvals, tt.disapprovals, tt.eligible)

			if got.MajorityNumber != tt.wantMajority {
				t.Errorf("MajorityNumber = %d, want %d", got.MajorityNumber, tt.wantMajority)
			}
			if got.DominantByCount != tt.wantByCount {
				t.Errorf("DominantByCount = %s, want %s", got.DominantByCount, tt.wantByCount)
			}
			if got.DominantByMajority != tt.wantByMajority {
				t.Errorf("DominantByMajority = %s, want %s", got.DominantByMajority, tt.wantByMajority)
			}
			if got.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %s, want %s", got.Outcome, tt.wantOutcome)
			}
		})
	}
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		input   string
		want    Outcome
		wantErr bool
	}{
		{"APPROVED", OutcomeApproved, false},
		{"APPROVE", OutcomeApproved, false},
		{"YES", OutcomeApproved, false},
		{"approved", OutcomeApproved, false},
		{"APPROVE_NOMAJ", OutcomeApprovedNoMajority, false},
		{"APPROVED_NOMAJ", OutcomeApprovedNoMajority, false},
		{"APPROVED_NO_MAJORITY", OutcomeApprovedNoMajority, false},
		{"DISAPPROVE", OutcomeDisapproved, false},
		{"NO", OutcomeDisapproved, false},
		{"DISAPPROVE_NOMAJ", OutcomeDisapprovedNoMajority, false},
		{"TIE", OutcomeTie, false},
		{"CANCELLED", OutcomeCancelled, false},
		{"AUTO", OutcomeUnknown, false},
		{"UNKNOWN", OutcomeUnknown, false},
		{"bogus", OutcomeUnknown, true},
		{"", OutcomeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutcome(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOutcome(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseOutcome(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutcomeFinal(t *testing.T) {
	final := []Outcome{OutcomeApproved, OutcomeDisapproved, OutcomeCancelled}
	open := []Outcome{OutcomeUnknown, OutcomeApprovedNoMajority, OutcomeDisapprovedNoMajority, OutcomeTie}

	for _, o := range final {
		if !o.Final() {
			t.Errorf("Expected %s to be final", o)
		}
	}
	for _, o := range open {
		if o.Final() {
			t.Errorf("Expected %s not to be final", o)
		}
	}
}
