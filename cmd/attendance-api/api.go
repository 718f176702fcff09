// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

// AttendanceAPI bundles the services behind the HTTP handlers.
type AttendanceAPI struct {
	authService           *service.AuthService
	rosterService         *service.RosterService
	sessionService        *service.SessionService
	attendanceService     *service.AttendanceService
	reconciliationService *service.ReconciliationService
	reportService         *service.ReportService

	// reportsDir is where generated PDF reports are archived. Empty
	// disables archiving; downloads still stream.
	reportsDir string
}

// NewAttendanceAPI creates a new AttendanceAPI.
func NewAttendanceAPI(
	authService *service.AuthService,
	rosterService *service.RosterService,
	sessionService *service.SessionService,
	attendanceService *service.AttendanceService,
	reconciliationService *service.ReconciliationService,
	reportService *service.ReportService,
	reportsDir string,
) *AttendanceAPI {
	return &AttendanceAPI{
		authService:           authService,
		rosterService:         rosterService,
		sessionService:        sessionService,
		attendanceService:     attendanceService,
		reconciliationService: reconciliationService,
		reportService:         reportService,
		reportsDir:            reportsDir,
	}
}

// handleLivez reports process liveness.
func (api *AttendanceAPI) handleLivez(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReadyz reports readiness of every wired service.
func (api *AttendanceAPI) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	ready := api.authService.ServiceReady() &&
		api.rosterService.ServiceReady() &&
		api.sessionService.ServiceReady() &&
		api.attendanceService.ServiceReady() &&
		api.reconciliationService.ServiceReady() &&
		api.reportService.ServiceReady()
	if !ready {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "error encoding response", logging.ErrKey, err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "internal error serving request", logging.ErrKey, err)
	}

	writeJSON(ctx, w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("invalid request body", err)
	}
	return nil
}
