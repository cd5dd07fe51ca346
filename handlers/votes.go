// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/cliparse"
	"github.com/danielhkuo/approval-bot/identity"
	"github.com/danielhkuo/approval-bot/middleware"
	"github.com/danielhkuo/approval-bot/models"
	"github.com/danielhkuo/approval-bot/roster"
	"github.com/danielhkuo/approval-bot/store"
)

type VoteHandler struct {
	st  store.Store
	rst *roster.Roster
	cfg cliparse.Config
}

func NewVoteHandler(st store.Store, rst *roster.Roster, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{st: st, rst: rst, cfg: cfg}
}

// Approve handles POST /approvals/:id/approve
func (h *VoteHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.castByID(w, r, approval.ChoiceApprove)
}

// Disapprove handles POST /approvals/:id/disapprove
func (h *VoteHandler) Disapprove(w http.ResponseWriter, r *http.Request) {
	h.castByID(w, r, approval.ChoiceDisapprove)
}

// ApproveByMessage handles POST /messages/:message_id/approve
func (h *VoteHandler) ApproveByMessage(w http.ResponseWriter, r *http.Request) {
	h.castByMessage(w, r, approval.ChoiceApprove)
}

// DisapproveByMessage handles POST /messages/:message_id/disapprove
func (h *VoteHandler) DisapproveByMessage(w http.ResponseWriter, r *http.Request) {
	h.castByMessage(w, r, approval.ChoiceDisapprove)
}

func (h *VoteHandler) castByID(w http.ResponseWriter, r *http.Request, choice approval.Choice) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "approval id must be an integer")
		return
	}
	h.cast(w, r, choice, func() (*approval.Approval, error) {
		return h.st.FindByID(r.Context(), id)
	})
}

func (h *VoteHandler) castByMessage(w http.ResponseWriter, r *http.Request, choice approval.Choice) {
	messageID, err := strconv.ParseInt(r.PathValue("message_id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message_id must be an integer")
		return
	}
	h.cast(w, r, choice, func() (*approval.Approval, error) {
		return h.st.FindByMessageID(r.Context(), messageID)
	})
}

// cast runs the full vote cycle: eligibility check, per-approval lock,
// reload, ledger mutation, persistence, majority detection.
func (h *VoteHandler) cast(w http.ResponseWriter, r *http.Request, choice approval.Choice, find func() (*approval.Approval, error)) {
	voter, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return
	}

	snap := h.rst.Snapshot()
	if !snap.CanVote(voter) {
		middleware.ErrorResponse(w, http.StatusForbidden, "not eligible to vote")
		return
	}

	a, err := find()
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Approval not found")
		return
	}
	if err != nil {
		slog.Error("failed to query approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	unlock := lockApproval(a.ID)
	defer unlock()

	// Reload under the lock; another vote may have landed meanwhile.
	a, err = h.st.FindByID(r.Context(), a.ID)
	if err != nil {
		slog.Error("failed to reload approval", "error", err, "approval_id", a.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if a.Outcome == approval.OutcomeCancelled {
		middleware.ErrorResponse(w, http.StatusConflict, "approval was cancelled")
		return
	}

	eligible := snap.EligibleTotal()
	before := approval.Evaluate(a.Approvals, a.Disapprovals, eligible)
	prevApprovals, prevDisapprovals := a.Approvals, a.Disapprovals

	now := time.Now()
	approvals, disapprovals, err := a.CastVote(voter, choice, now, eligible)
	if errors.Is(err, approval.ErrExpired) {
		middleware.ErrorResponse(w, http.StatusConflict, "approval request has ended")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	after := approval.Evaluate(approvals, disapprovals, eligible)

	changed := approvals != prevApprovals || disapprovals != prevDisapprovals
	if changed {
		if err := h.st.Update(r.Context(), a); err != nil {
			slog.Error("failed to persist vote", "error", err, "approval_id", a.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}

		ev := store.VoteEvent{
			ID:         uuid.New().String(),
			ApprovalID: a.ID,
			Voter:      voter,
			Choice:     choice,
			CreatedAt:  now.UTC(),
		}
		if err := h.st.InsertVoteEvent(r.Context(), ev); err != nil {
			slog.Warn("failed to record vote event", "error", err, "approval_id", a.ID)
			// Non-fatal: the vote itself is persisted, just no audit row
		}
	}

	// A repeat of the same vote leaves the dominant side alone, so this
	// only fires the first time a side crosses the majority number.
	justReached := after.DominantByMajority != approval.SideNone &&
		before.DominantByMajority != after.DominantByMajority

	resp := models.CastVoteResponse{
		ApprovalID:          a.ID,
		Approvals:           approvals,
		Disapprovals:        disapprovals,
		Outcome:             string(a.Outcome),
		MajorityNumber:      after.MajorityNumber,
		JustReachedMajority: justReached,
	}
	if justReached {
		resp.Announcement = announcement(a, after.DominantByMajority)
	}
	if snap.Policy.ShowVotes {
		resp.VoteLine = fmt.Sprintf("%s voted to %s (%d approvals / %d disapprovals)",
			voter, choice, approvals, disapprovals)
	}

	slog.Info("vote cast",
		"approval_id", a.ID,
		"voter", voter,
		"choice", choice,
		"approvals", approvals,
		"disapprovals", disapprovals,
		"outcome", a.Outcome,
		"just_reached_majority", justReached,
	)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// announcement renders the chat message posted when a side first
// reaches the majority number.
func announcement(a *approval.Approval, side approval.Side) string {
	if side == approval.SideApproval {
		return fmt.Sprintf(":green_circle: :green_circle: :green_circle: "+
			"The poll for post/user/action '%s' has reached majority moderator **approval**! "+
			"The action may now be taken :)", a.URL)
	}
	return fmt.Sprintf(":red_circle: :red_circle: :red_circle: "+
		"The poll for post/user/action '%s' has reached majority moderator **disapproval**! "+
		"The action should NOT be taken.", a.URL)
}
