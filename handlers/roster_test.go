// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/approval-bot/models"
	"github.com/danielhkuo/approval-bot/testutil"
)

func TestAddModerator(t *testing.T) {
	_, rst, _ := setupHandlers(t)
	handler := NewRosterHandler(rst)

	tests := []struct {
		name           string
		caller         string
		body           interface{}
		expectedStatus int
	}{
		{"admin adds", "admin#1", models.RosterAddRequest{Name: "newmod#9"}, http.StatusNoContent},
		{"duplicate entry", "admin#1", models.RosterAddRequest{Name: "mod#1"}, http.StatusConflict},
		{"moderator cannot add", "mod#1", models.RosterAddRequest{Name: "x#1"}, http.StatusForbidden},
		{"outsider cannot add", "stranger#1", models.RosterAddRequest{Name: "x#1"}, http.StatusForbidden},
		{"blank name", "admin#1", models.RosterAddRequest{Name: "   "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/roster/moderators", tt.body, nil)
			withIdentity(req, tt.caller)
			w := httptest.NewRecorder()

			handler.AddModerator(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// The addition is visible to eligibility checks
	if !rst.Snapshot().IsModerator("newmod#9") {
		t.Error("Added moderator missing from snapshot")
	}
}

func TestRemoveModerator(t *testing.T) {
	_, rst, _ := setupHandlers(t)
	handler := NewRosterHandler(rst)

	remove := func(name, caller string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/roster/moderators/"+name, nil)
		req.SetPathValue("name", name)
		withIdentity(req, caller)
		w := httptest.NewRecorder()
		handler.RemoveModerator(w, req)
		return w
	}

	testutil.AssertStatus(t, remove("mod#1", "admin#1"), http.StatusNoContent)
	if rst.Snapshot().IsModerator("mod#1") {
		t.Error("Removed moderator still in snapshot")
	}

	// Removing again is a 404
	testutil.AssertStatus(t, remove("mod#1", "admin#1"), http.StatusNotFound)

	// Moderators cannot edit the roster
	testutil.AssertStatus(t, remove("mod#2", "mod#3"), http.StatusForbidden)
}

func TestAdminRoster(t *testing.T) {
	_, rst, _ := setupHandlers(t)
	handler := NewRosterHandler(rst)

	req := testutil.MakeRequest("POST", "/roster/admins", models.RosterAddRequest{Name: "admin#2"}, nil)
	withIdentity(req, "admin#1")
	w := httptest.NewRecorder()
	handler.AddAdmin(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if !rst.Snapshot().IsAdmin("admin#2") {
		t.Error("Added admin missing from snapshot")
	}

	delReq := httptest.NewRequest("DELETE", "/roster/admins/admin%232", nil)
	delReq.SetPathValue("name", "admin#2")
	withIdentity(delReq, "admin#1")
	w = httptest.NewRecorder()
	handler.RemoveAdmin(w, delReq)
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestListRoster(t *testing.T) {
	_, rst, _ := setupHandlers(t)
	handler := NewRosterHandler(rst)

	t.Run("staff can list", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/roster/moderators", nil)
		withIdentity(req, "mod#1")
		w := httptest.NewRecorder()
		handler.ListModerators(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.RosterListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Names) != 4 {
			t.Errorf("Moderator list = %v, want 4 entries", resp.Names)
		}
	})

	t.Run("outsider cannot list", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/roster/admins", nil)
		withIdentity(req, "stranger#1")
		w := httptest.NewRecorder()
		handler.ListAdmins(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestSetShowVotes(t *testing.T) {
	_, rst, _ := setupHandlers(t)
	handler := NewRosterHandler(rst)

	set := func(enabled bool, caller string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/roster/settings/show-votes",
			models.ShowVotesRequest{Enabled: enabled}, nil)
		withIdentity(req, caller)
		w := httptest.NewRecorder()
		handler.SetShowVotes(w, req)
		return w
	}

	w := set(true, "admin#1")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ShowVotesResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.ShowVotes {
		t.Error("Expected show_votes true in response")
	}
	if !rst.Snapshot().Policy.ShowVotes {
		t.Error("show_votes not applied to roster")
	}

	// Moderators cannot change the setting
	testutil.AssertStatus(t, set(false, "mod#1"), http.StatusForbidden)
	if !rst.Snapshot().Policy.ShowVotes {
		t.Error("Rejected change must not apply")
	}
}
