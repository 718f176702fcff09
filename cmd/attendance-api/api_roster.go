// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// handleListRoster returns the full roster ordered by full name.
func (api *AttendanceAPI) handleListRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := api.rosterService.ListEntries(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, entries)
}

// handleGetRosterEntry returns one roster entry by UID.
func (api *AttendanceAPI) handleGetRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, err := api.rosterService.GetEntry(ctx, r.PathValue("uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, entry)
}

// handleCreateRosterEntry adds a new roster entry.
func (api *AttendanceAPI) handleCreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var entry models.RosterEntry
	if err := decodeBody(r, &entry); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := api.rosterService.CreateEntry(ctx, &entry)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, created)
}

// handleUpdateRosterEntry updates an existing roster entry.
func (api *AttendanceAPI) handleUpdateRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var entry models.RosterEntry
	if err := decodeBody(r, &entry); err != nil {
		writeError(ctx, w, err)
		return
	}
	entry.UID = r.PathValue("uid")

	updated, err := api.rosterService.UpdateEntry(ctx, &entry)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, updated)
}

// handleDeleteRosterEntry removes a roster entry and its ledger records.
func (api *AttendanceAPI) handleDeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := api.rosterService.DeleteEntry(ctx, r.PathValue("uid")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
