// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the approval-bot API.

# Handler Types

Each handler is a struct with store, roster, and config dependencies:

  - ApprovalHandler: Approval lifecycle (create, read, attach, cancel)
  - VoteHandler: Vote casting through either route family
  - RosterHandler: Moderator/admin lists and the show_votes setting

Handlers are created via constructor functions:

	approvalHandler := handlers.NewApprovalHandler(st, rst, cfg)

# Approval Lifecycle

	POST /approvals              → Create (staff only)
	GET  /approvals              → List (filter by outcome, requester, url, action)
	GET  /approvals/{id}         → Get
	PUT  /approvals/{id}/message → AttachMessage (staff only)
	POST /approvals/{id}/cancel  → Cancel (requester or admin)

All caller-identifying operations read the X-Identity header.

# Voting Flow

Votes resolve an approval by its ID or by its attached chat message:

	POST /approvals/{id}/approve
	POST /approvals/{id}/disapprove
	POST /messages/{message_id}/approve
	POST /messages/{message_id}/disapprove

Both route families converge on the same per-approval lock, so two
votes for one approval never interleave no matter how they arrived.
The response reports the new counts, the outcome, and whether this
vote was the one that pushed a side past the majority number; when it
was, the response carries the announcement text for the chat layer to
post.

# Roster Management

	POST   /roster/moderators           → AddModerator (admin only)
	GET    /roster/moderators           → ListModerators (staff)
	DELETE /roster/moderators/{name}    → RemoveModerator (admin only)
	POST   /roster/admins               → AddAdmin (admin only)
	GET    /roster/admins               → ListAdmins (staff)
	DELETE /roster/admins/{name}        → RemoveAdmin (admin only)
	PUT    /roster/settings/show-votes  → SetShowVotes (admin only)

Roster edits take effect on the next vote: eligibility and the majority
number are recomputed from a fresh roster snapshot per request.
*/
package handlers
