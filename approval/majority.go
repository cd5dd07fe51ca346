// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package approval

// Side names the side of a tally that currently dominates.
type Side string

const (
	SideApproval    Side = "approval"
	SideDisapproval Side = "disapproval"
	SideNone        Side = "none"
)

// Tally is the full result of evaluating a vote count against the eligible
// voter total. It carries both tie-break views: DominantByCount compares raw
// counts, DominantByMajority applies the binding majority threshold.
type Tally struct {
	Approvals          int
	Disapprovals       int
	MajorityNumber     int
	DominantByCount    Side
	DominantByMajority Side
	Outcome            Outcome
}

// MajorityNumber is the minimum same-side vote count required for a binding
// majority: floor(eligibleTotal/2) + 1.
func MajorityNumber(eligibleTotal int) int {
	return eligibleTotal/2 + 1
}

// Evaluate classifies the current vote state. It is a pure function: the
// caller supplies the live eligible voter total, typically recomputed from
// the roster at each vote rather than taken from the request's creation-time
// snapshot.
func Evaluate(approvals, disapprovals, eligibleTotal int) Tally {
	t := Tally{
		Approvals:          approvals,
		Disapprovals:       disapprovals,
		MajorityNumber:     MajorityNumber(eligibleTotal),
		DominantByCount:    SideNone,
		DominantByMajority: SideNone,
	}

	switch {
	case approvals > disapprovals:
		t.DominantByCount = SideApproval
	case disapprovals > approvals:
		t.DominantByCount = SideDisapproval
	}

	if approvals >= t.MajorityNumber {
		t.DominantByMajority = SideApproval
	} else if disapprovals >= t.MajorityNumber {
		t.DominantByMajority = SideDisapproval
	}

	switch {
	case t.DominantByMajority == SideApproval:
		t.Outcome = OutcomeApproved
	case t.DominantByMajority == SideDisapproval:
		t.Outcome = OutcomeDisapproved
	case t.DominantByCount == SideApproval:
		t.Outcome = OutcomeApprovedNoMajority
	case t.DominantByCount == SideDisapproval:
		t.Outcome = OutcomeDisapprovedNoMajority
	case approvals == 0 && disapprovals == 0:
		// No votes yet: not a tie, just undecided.
		t.Outcome = OutcomeUnknown
	default:
		t.Outcome = OutcomeTie
	}

	return t
}
