// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/approval-bot/identity"
	"github.com/danielhkuo/approval-bot/middleware"
	"github.com/danielhkuo/approval-bot/models"
	"github.com/danielhkuo/approval-bot/roster"
)

type RosterHandler struct {
	rst *roster.Roster
}

func NewRosterHandler(rst *roster.Roster) *RosterHandler {
	return &RosterHandler{rst: rst}
}

// AddModerator handles POST /roster/moderators
func (h *RosterHandler) AddModerator(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "moderator", h.rst.AddModerator)
}

// RemoveModerator handles DELETE /roster/moderators/:name
func (h *RosterHandler) RemoveModerator(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "moderator", h.rst.RemoveModerator)
}

// ListModerators handles GET /roster/moderators
func (h *RosterHandler) ListModerators(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.rst.Snapshot().Moderators)
}

// AddAdmin handles POST /roster/admins
func (h *RosterHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "admin", h.rst.AddAdmin)
}

// RemoveAdmin handles DELETE /roster/admins/:name
func (h *RosterHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "admin", h.rst.RemoveAdmin)
}

// ListAdmins handles GET /roster/admins
func (h *RosterHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.rst.Snapshot().Admins)
}

// SetShowVotes handles PUT /roster/settings/show-votes
func (h *RosterHandler) SetShowVotes(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.ShowVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.rst.SetShowVotes(req.Enabled); err != nil {
		slog.Error("failed to persist show_votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	slog.Info("show_votes changed", "enabled", req.Enabled)
	middleware.JSONResponse(w, http.StatusOK, models.ShowVotesResponse{ShowVotes: req.Enabled})
}

func (h *RosterHandler) add(w http.ResponseWriter, r *http.Request, role string, addFn func(identity.Identity) error) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.RosterAddRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name, err := identity.Parse(req.Name)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid name: "+err.Error())
		return
	}

	if err := addFn(name); err != nil {
		if errors.Is(err, roster.ErrAlreadyListed) {
			middleware.ErrorResponse(w, http.StatusConflict, name.String()+" is already a "+role)
			return
		}
		slog.Error("failed to add to roster", "error", err, "role", role, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save roster")
		return
	}

	slog.Info("roster entry added", "role", role, "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RosterHandler) remove(w http.ResponseWriter, r *http.Request, role string, removeFn func(identity.Identity) error) {
	if !h.requireAdmin(w, r) {
		return
	}

	name, err := identity.Parse(r.PathValue("name"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid name: "+err.Error())
		return
	}

	if err := removeFn(name); err != nil {
		if errors.Is(err, roster.ErrNotListed) {
			middleware.ErrorResponse(w, http.StatusNotFound, name.String()+" is not a "+role)
			return
		}
		slog.Error("failed to remove from roster", "error", err, "role", role, "name", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save roster")
		return
	}

	slog.Info("roster entry removed", "role", role, "name", name)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RosterHandler) list(w http.ResponseWriter, r *http.Request, entries []identity.Identity) {
	caller, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return
	}
	if !h.rst.Snapshot().IsStaff(caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "only moderators and admins may read the roster")
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.String())
	}
	middleware.JSONResponse(w, http.StatusOK, models.RosterListResponse{Names: names})
}

// requireAdmin resolves the caller and writes a 403 unless they are on
// the admin list. Roster edits are admin-only.
func (h *RosterHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	caller, err := identity.FromRequest(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid "+identity.Header+" header is required")
		return false
	}
	if !h.rst.Snapshot().IsAdmin(caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "only admins may manage the roster")
		return false
	}
	return true
}
