// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package approval implements the vote ledger and the majority decision engine.

# Vote Ledger

Approval is the record for one moderator approval request. CastVote owns all
mutation: it is idempotent for repeat votes, atomically moves a voter between
sides on a switched vote, and rejects anything past the end time:

	a := approval.New("ban", post, reason, requester, eligible, endTime)
	approvals, disapprovals, err := a.CastVote(voter, approval.ChoiceApprove, time.Now(), eligible)

Two invariants hold at all times: a voter appears on at most one side, and
each counter equals the length of its voter list.

# Majority Evaluation

Evaluate is a pure function of (approvals, disapprovals, eligibleTotal):

	t := approval.Evaluate(3, 1, 4)
	// t.MajorityNumber == 3, t.DominantByMajority == approval.SideApproval

The binding threshold is floor(eligibleTotal/2)+1. An outcome without a
majority is still classified by raw count (APPROVED_NO_MAJORITY and friends).
A 0/0 tally is UNKNOWN, not TIE; a tie requires at least one vote.

# Outcomes

Outcome values are canonical single tags. Legacy alias spellings (APPROVE,
YES, APPROVE_NOMAJ, AUTO, ...) are accepted by ParseOutcome for reading old
rows but are never stored.
*/
package approval
