// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

// handleListAttendance returns the ledger for one session joined with
// roster fields, ordered by join time ascending.
func (api *AttendanceAPI) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := api.attendanceService.ListBySession(ctx, r.PathValue("uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, records)
}

type reconcileRequest struct {
	ZoomMeetingUUID string `json:"zoom_meeting_uuid"`
}

// handleReconcile fetches participants from Zoom, matches them against the
// roster and records attendance for the session.
func (api *AttendanceAPI) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reconcileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := api.reconciliationService.Reconcile(ctx, r.PathValue("uid"), req.ZoomMeetingUUID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, summary)
}

// handleAddAttendance inserts one manual attendance record. Duplicates for
// the same (session, roster entry) pair are a conflict.
func (api *AttendanceAPI) handleAddAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var record models.AttendanceRecord
	if err := decodeBody(r, &record); err != nil {
		writeError(ctx, w, err)
		return
	}
	record.SessionUID = r.PathValue("uid")

	created, err := api.attendanceService.AddManualRecord(ctx, &record)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, created)
}

// handleAttendanceReport streams the PDF attendance report for a session.
func (api *AttendanceAPI) handleAttendanceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionUID := r.PathValue("uid")

	// Render into a buffer first so a render failure can still produce a
	// JSON error response instead of a truncated PDF.
	var buf bytes.Buffer
	if err := api.reportService.GeneratePDF(ctx, sessionUID, &buf); err != nil {
		writeError(ctx, w, err)
		return
	}

	filename := service.ReportFileName(sessionUID, time.Now())
	api.archiveReport(ctx, filename, buf.Bytes())

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// archiveReport keeps a copy of a generated report on disk. Failures are
// logged but do not fail the download.
func (api *AttendanceAPI) archiveReport(ctx context.Context, filename string, pdf []byte) {
	if api.reportsDir == "" {
		return
	}
	path := filepath.Join(api.reportsDir, filename)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		slog.WarnContext(ctx, "error archiving attendance report",
			logging.ErrKey, err, "path", path)
	}
}

// handleAttendanceSummary returns the plain-text attendance summary.
func (api *AttendanceAPI) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := api.reportService.TextSummary(ctx, r.PathValue("uid"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(summary))
}
