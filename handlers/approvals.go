// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/approval-bot/approval"
	"github.com/danielhkuo/approval-bot/cliparse"
	"github.com/danielhkuo/approval-bot/identity"
	"github.com/danielhkuo/approval-bot/middleware"
	"github.com/danielhkuo/approval-bot/models"
	"github.com/danielhkuo/approval-bot/roster"
	"github.com/danielhkuo/approval-bot/store"
)

type ApprovalHandler struct {
	st  store.Store
	rst *roster.Roster
	cfg cliparse.Config
}

func NewApprovalHandler(st store.Store, rst *roster.Roster, cfg cliparse.Config) *ApprovalHandler {
	return &ApprovalHandler{st: st, rst: rst, cfg: cfg}
}

// Create handles POST /approvals
func (h *ApprovalHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return
	}

	snap := h.rst.Snapshot()
	if !snap.IsStaff(caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "only moderators and admins may request approval")
		return
	}

	var req models.CreateApprovalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Action == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "action is required")
		return
	}
	if req.URL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "url is required")
		return
	}
	if req.Reason == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reason is required")
		return
	}
	if req.ExpireMinutes < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "expire_minutes must be positive")
		return
	}

	expire := req.ExpireMinutes
	if expire == 0 {
		expire = h.cfg.ExpireMinutes
	}

	now := time.Now().UTC()
	a := approval.New(req.Action, req.URL, req.Reason, caller,
		snap.EligibleTotal(), now.Add(time.Duration(expire)*time.Minute))
	a.MessageID = req.MessageID

	if err := h.st.Insert(r.Context(), a); err != nil {
		if errors.Is(err, store.ErrDuplicateMessageID) {
			middleware.ErrorResponse(w, http.StatusConflict, "message is already attached to an approval")
			return
		}
		slog.Error("failed to insert approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create approval")
		return
	}

	slog.Info("approval created",
		"approval_id", a.ID,
		"action", a.Action,
		"requested_by", caller,
		"end_time", a.EndTime,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateApprovalResponse{
		ApprovalID: a.ID,
		EndTime:    a.EndTime,
		TimeLeft:   approval.TimeLeft(a.EndTime, now),
	})
}

// Get handles GET /approvals/:id
func (h *ApprovalHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.findByPathID(w, r)
	if !ok {
		return
	}

	snap := h.rst.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.NewApprovalView(a,
		approval.MajorityNumber(snap.EligibleTotal()), snap.Policy.ShowVotes, time.Now()))
}

// GetByMessage handles GET /messages/:message_id
func (h *ApprovalHandler) GetByMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.ParseInt(r.PathValue("message_id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message_id must be an integer")
		return
	}

	a, err := h.st.FindByMessageID(r.Context(), messageID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Approval not found")
		return
	}
	if err != nil {
		slog.Error("failed to query approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	snap := h.rst.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.NewApprovalView(a,
		approval.MajorityNumber(snap.EligibleTotal()), snap.Policy.ShowVotes, time.Now()))
}

// List handles GET /approvals
func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f store.ListFilter
	if s := q.Get("outcome"); s != "" {
		outcome, err := approval.ParseOutcome(s)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown outcome filter")
			return
		}
		f.Outcome = outcome
	}
	f.RequestedBy = identity.Identity(q.Get("requested_by"))
	f.URL = q.Get("url")
	f.Action = q.Get("action")
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		f.Limit = limit
	}

	approvals, err := h.st.List(r.Context(), f)
	if err != nil {
		slog.Error("failed to list approvals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	snap := h.rst.Snapshot()
	majority := approval.MajorityNumber(snap.EligibleTotal())
	now := time.Now()

	views := make([]models.ApprovalView, 0, len(approvals))
	for _, a := range approvals {
		views = append(views, models.NewApprovalView(a, majority, snap.Policy.ShowVotes, now))
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListApprovalsResponse{Approvals: views})
}

// AttachMessage handles PUT /approvals/:id/message
func (h *ApprovalHandler) AttachMessage(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return
	}
	if !h.rst.Snapshot().IsStaff(caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "only moderators and admins may attach messages")
		return
	}

	a, ok := h.findByPathID(w, r)
	if !ok {
		return
	}

	var req models.AttachMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MessageID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message_id is required")
		return
	}

	if err := h.st.SetMessageID(r.Context(), a.ID, req.MessageID); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateMessageID):
			middleware.ErrorResponse(w, http.StatusConflict, "message is already attached to an approval")
		case errors.Is(err, store.ErrNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Approval not found")
		default:
			slog.Error("failed to attach message", "error", err, "approval_id", a.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to attach message")
		}
		return
	}

	slog.Info("message attached", "approval_id", a.ID, "message_id", req.MessageID)
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /approvals/:id/cancel
func (h *ApprovalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return
	}

	a, ok := h.findByPathID(w, r)
	if !ok {
		return
	}

	// Only the requester or an admin may withdraw a request.
	if caller != a.Requester && !h.rst.Snapshot().IsAdmin(caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "only the requester or an admin may cancel")
		return
	}

	unlock := lockApproval(a.ID)
	defer unlock()

	// Reload under the lock; a vote may have landed meanwhile.
	a, err = h.st.FindByID(r.Context(), a.ID)
	if err != nil {
		slog.Error("failed to reload approval", "error", err, "approval_id", a.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	if a.Outcome == approval.OutcomeCancelled {
		middleware.ErrorResponse(w, http.StatusConflict, "approval is already cancelled")
		return
	}
	if a.IsExpired(now) {
		middleware.ErrorResponse(w, http.StatusConflict, "approval request has ended")
		return
	}

	a.Cancel(now)
	if err := h.st.Update(r.Context(), a); err != nil {
		slog.Error("failed to cancel approval", "error", err, "approval_id", a.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel approval")
		return
	}

	slog.Info("approval cancelled", "approval_id", a.ID, "by", caller)

	snap := h.rst.Snapshot()
	middleware.JSONResponse(w, http.StatusOK, models.NewApprovalView(a,
		approval.MajorityNumber(snap.EligibleTotal()), snap.Policy.ShowVotes, now))
}

// findByPathID resolves the :id path segment to a stored approval,
// writing the error response itself when resolution fails.
func (h *ApprovalHandler) findByPathID(w http.ResponseWriter, r *http.Request) (*approval.Approval, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "approval id must be an integer")
		return nil, false
	}

	a, err := h.st.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Approval not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to query approval", "error", err, "approval_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return a, true
}
