// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// handleListSessions returns all sessions, newest first.
func (api *AttendanceAPI) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := api.sessionService.ListSessions(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, sessions)
}

// handleGetSession returns one session by UID.
func (api *AttendanceAPI) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := api.sessionService.GetSession(ctx, r.PathValue("uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, session)
}

// handleCreateSession registers a new session from its join link.
func (api *AttendanceAPI) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var session models.Session
	if err := decodeBody(r, &session); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := api.sessionService.CreateSession(ctx, &session)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, created)
}

// handleDeleteSession removes a session and its ledger records.
func (api *AttendanceAPI) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := api.sessionService.DeleteSession(ctx, r.PathValue("uid")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
