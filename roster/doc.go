// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster manages the eligibility roster: the moderator and admin name
lists plus the voting-policy flags, backed by a YAML config file.

# Config File

	moderators:
	    - alice#0001
	    - bob#0002
	admins:
	    - carol#0003
	show_votes: false
	admins_can_vote: true
	majority_include_admins: true

Load creates the file with defaults when missing and fills in any missing
keys on existing files. Every mutation (AddModerator, SetShowVotes, ...)
writes the file back immediately.

# Snapshots

The roster is shared mutable state, so evaluation code never touches it
directly. Handlers take a Snapshot per request:

	snap := rst.Snapshot()
	if !snap.CanVote(voter) { ... }
	total := snap.EligibleTotal()

EligibleTotal implements the majority-inclusion policy: the deduplicated
union of moderators and admins when admins both vote and count toward the
majority, the moderator count alone otherwise.
*/
package roster
