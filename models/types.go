package models

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/approval-bot/approval"
)

// Request types

type CreateApprovalRequest struct {
	Action        string `json:"action"`
	URL           string `json:"url"`
	Reason        string `json:"reason"`
	ExpireMinutes int    `json:"expire_minutes,omitempty"`
	MessageID     int64  `json:"message_id,omitempty"`
}

type AttachMessageRequest struct {
	MessageID int64 `json:"message_id"`
}

type RosterAddRequest struct {
	Name string `json:"name"`
}

type ShowVotesRequest struct {
	Enabled bool `json:"enabled"`
}

// Response types

type CreateApprovalResponse struct {
	ApprovalID int64     `json:"approval_id"`
	EndTime    time.Time `json:"end_time"`
	TimeLeft   string    `json:"time_left"`
}

type CastVoteResponse struct {
	ApprovalID          int64  `json:"approval_id"`
	Approvals           int    `json:"approvals"`
	Disapprovals        int    `json:"disapprovals"`
	Outcome             string `json:"outcome"`
	MajorityNumber      int    `json:"majority_number"`
	JustReachedMajority bool   `json:"just_reached_majority"`
	Announcement        string `json:"announcement,omitempty"`
	VoteLine            string `json:"vote_line,omitempty"`
}

type ListApprovalsResponse struct {
	Approvals []ApprovalView `json:"approvals"`
}

type RosterListResponse struct {
	Names []string `json:"names"`
}

type ShowVotesResponse struct {
	ShowVotes bool `json:"show_votes"`
}

// Domain types

type ApprovalView struct {
	ApprovalID     int64  `json:"approval_id"`
	MessageID      int64  `json:"message_id,omitempty"`
	Action         string `json:"action"`
	URL            string `json:"url"`
	Reason         string `json:"reason"`
	RequestedBy    string `json:"requested_by"`
	Approvals      int    `json:"approvals"`
	Disapprovals   int    `json:"disapprovals"`

	// Voter names are only populated while show_votes is enabled.
	ApprovedBy    []string `json:"approved_by,omitempty"`
	DisapprovedBy []string `json:"disapproved_by,omitempty"`

	Outcome        string `json:"outcome"`
	MajorityNumber int    `json:"majority_number"`
	TotalEligible  int    `json:"total_eligible"`

	EndTime   time.Time `json:"end_time"`
	TimeLeft  string    `json:"time_left"`
	CreatedAt time.Time `json:"created_at"`
	Created   string    `json:"created"`
}

// NewApprovalView renders an approval for API responses. majorityNumber
// comes from the live roster, not the stored snapshot.
func NewApprovalView(a *approval.Approval, majorityNumber int, showVotes bool, now time.Time) ApprovalView {
	v := ApprovalView{
		ApprovalID:     a.ID,
		MessageID:      a.MessageID,
		Action:         a.Action,
		URL:            a.URL,
		Reason:         a.Reason,
		RequestedBy:    string(a.Requester),
		Approvals:      a.Approvals,
		Disapprovals:   a.Disapprovals,
		Outcome:        string(a.Outcome),
		MajorityNumber: majorityNumber,
		TotalEligible:  a.TotalEligible,
		EndTime:        a.EndTime,
		TimeLeft:       approval.TimeLeft(a.EndTime, now),
		CreatedAt:      a.CreatedAt,
		Created:        humanize.Time(a.CreatedAt),
	}
	if showVotes {
		v.ApprovedBy = names(a.ApprovedBy)
		v.DisapprovedBy = names(a.DisapprovedBy)
	}
	return v
}

func names[T ~string](list []T) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, string(v))
	}
	return out
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
