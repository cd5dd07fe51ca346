// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateApprovalRequest: action, url, reason, expire_minutes, message_id
  - AttachMessageRequest: message_id
  - RosterAddRequest: name
  - ShowVotesRequest: enabled

# Response Types

Types for JSON responses:

  - CreateApprovalResponse: approval_id, end_time, time_left
  - CastVoteResponse: counts, outcome, majority_number, just_reached_majority
  - ListApprovalsResponse: approvals
  - RosterListResponse: names
  - ShowVotesResponse: show_votes
  - ErrorResponse: error, message

# Domain Types

ApprovalView is the rendered form of an approval request. It carries the
live majority number computed from the current roster and a human time
phrase ("3 hours ago") for the creation time. Voter name lists appear
only while the show_votes policy flag is on; counts are always present.
*/
package models
