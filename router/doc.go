// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the approval-bot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, rst, cfg)

# Endpoints

Health:

	GET /health

Approval lifecycle (staff, requires X-Identity):

	POST /approvals              - Create approval request
	GET  /approvals              - List approvals (filterable)
	GET  /approvals/{id}         - Get one approval
	PUT  /approvals/{id}/message - Attach chat message
	POST /approvals/{id}/cancel  - Cancel (requester or admin)

Voting (eligible voters, requires X-Identity):

	POST /approvals/{id}/approve
	POST /approvals/{id}/disapprove
	POST /messages/{message_id}/approve
	POST /messages/{message_id}/disapprove

Message lookup:

	GET /messages/{message_id}

Roster management (admin, requires X-Identity):

	POST   /roster/moderators
	GET    /roster/moderators
	DELETE /roster/moderators/{name}
	POST   /roster/admins
	GET    /roster/admins
	DELETE /roster/admins/{name}
	PUT    /roster/settings/show-votes

# Handler Initialization

The router creates handler instances with dependency injection:

	approvalHandler := handlers.NewApprovalHandler(st, rst, cfg)
	voteHandler := handlers.NewVoteHandler(st, rst, cfg)
	rosterHandler := handlers.NewRosterHandler(rst)

Handlers receive the store, the roster, and the configuration.
*/
package router
