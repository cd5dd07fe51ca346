// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/approval-bot/cliparse"
	"github.com/danielhkuo/approval-bot/handlers"
	"github.com/danielhkuo/approval-bot/middleware"
	"github.com/danielhkuo/approval-bot/roster"
	"github.com/danielhkuo/approval-bot/store"
)

func NewRouter(st store.Store, rst *roster.Roster, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	approvalHandler := handlers.NewApprovalHandler(st, rst, cfg)
	voteHandler := handlers.NewVoteHandler(st, rst, cfg)
	rosterHandler := handlers.NewRosterHandler(rst)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Approval lifecycle
	mux.HandleFunc("POST /approvals", middleware.WithLogging(approvalHandler.Create))
	mux.HandleFunc("GET /approvals", middleware.WithLogging(approvalHandler.List))
	mux.HandleFunc("GET /approvals/{id}", middleware.WithLogging(approvalHandler.Get))
	mux.HandleFunc("PUT /approvals/{id}/message", middleware.WithLogging(approvalHandler.AttachMessage))
	mux.HandleFunc("POST /approvals/{id}/cancel", middleware.WithLogging(approvalHandler.Cancel))

	// Voting by approval ID
	mux.HandleFunc("POST /approvals/{id}/approve", middleware.WithLogging(voteHandler.Approve))
	mux.HandleFunc("POST /approvals/{id}/disapprove", middleware.WithLogging(voteHandler.Disapprove))

	// Voting by attached chat message
	mux.HandleFunc("GET /messages/{message_id}", middleware.WithLogging(approvalHandler.GetByMessage))
	mux.HandleFunc("POST /messages/{message_id}/approve", middleware.WithLogging(voteHandler.ApproveByMessage))
	mux.HandleFunc("POST /messages/{message_id}/disapprove", middleware.WithLogging(voteHandler.DisapproveByMessage))

	// Roster management
	mux.HandleFunc("POST /roster/moderators", middleware.WithLogging(rosterHandler.AddModerator))
	mux.HandleFunc("GET /roster/moderators", middleware.WithLogging(rosterHandler.ListModerators))
	mux.HandleFunc("DELETE /roster/moderators/{name}", middleware.WithLogging(rosterHandler.RemoveModerator))
	mux.HandleFunc("POST /roster/admins", middleware.WithLogging(rosterHandler.AddAdmin))
	mux.HandleFunc("GET /roster/admins", middleware.WithLogging(rosterHandler.ListAdmins))
	mux.HandleFunc("DELETE /roster/admins/{name}", middleware.WithLogging(rosterHandler.RemoveAdmin))
	mux.HandleFunc("PUT /roster/settings/show-votes", middleware.WithLogging(rosterHandler.SetShowVotes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("approval-bot API v1"))
	})

	return mux
}
