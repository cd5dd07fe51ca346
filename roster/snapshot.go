// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import "github.com/danielhkuo/approval-bot/identity"

// Snapshot is a read-only view of the roster taken at one point in time.
// Vote evaluation always works from a snapshot so a roster edit mid-flight
// cannot corrupt an evaluation in progress.
type Snapshot struct {
	Moderators []identity.Identity
	Admins     []identity.Identity
	Policy     Policy
}

// IsModerator reports whether name is on the moderator list.
func (s Snapshot) IsModerator(name identity.Identity) bool {
	return contains(s.Moderators, name)
}

// IsAdmin reports whether name is on the admin list.
func (s Snapshot) IsAdmin(name identity.Identity) bool {
	return contains(s.Admins, name)
}

// IsStaff reports whether name is a moderator or an admin. Staff may create
// approval requests and read the rosters.
func (s Snapshot) IsStaff(name identity.Identity) bool {
	return s.IsModerator(name) || s.IsAdmin(name)
}

// CanVote reports whether name may cast a vote under the current policy.
// Moderators can always vote; admins only while admins_can_vote is set.
func (s Snapshot) CanVote(name identity.Identity) bool {
	if s.IsModerator(name) {
		return true
	}
	return s.Policy.AdminsCanVote && s.IsAdmin(name)
}

// EligibleTotal returns the number of identities counted toward the
// majority threshold. When admins both vote and count, the total is the
// deduplicated union of the two lists so someone on both isn't counted
// twice; otherwise it is the moderator count alone.
func (s Snapshot) EligibleTotal() int {
	if !(s.Policy.MajorityIncludeAdmins && s.Policy.AdminsCanVote) {
		return len(s.Moderators)
	}

	union := make(map[identity.Identity]struct{}, len(s.Moderators)+len(s.Admins))
	for _, m := range s.Moderators {
		union[m] = struct{}{}
	}
	for _, a := range s.Admins {
		union[a] = struct{}{}
	}
	return len(union)
}
