// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// AttendanceService handles direct ledger access: manual entries created by
// an administrator and session-level listings. Manual entries go through
// the same uniqueness invariant as imported ones.
type AttendanceService struct {
	SessionRepository    domain.SessionRepository
	RosterRepository     domain.RosterRepository
	AttendanceRepository domain.AttendanceRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	sessionRepository domain.SessionRepository,
	rosterRepository domain.RosterRepository,
	attendanceRepository domain.AttendanceRepository,
) *AttendanceService {
	return &AttendanceService{
		SessionRepository:    sessionRepository,
		RosterRepository:     rosterRepository,
		AttendanceRepository: attendanceRepository,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AttendanceService) ServiceReady() bool {
	return s.SessionRepository != nil &&
		s.RosterRepository != nil &&
		s.AttendanceRepository != nil
}

// ListBySession returns the ledger for one session joined with roster
// fields, ordered by join time ascending.
func (s *AttendanceService) ListBySession(ctx context.Context, sessionUID string) ([]*models.AttendanceRecordWithRoster, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if sessionUID == "" {
		return nil, domain.NewValidationError("session UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("session_uid", sessionUID))

	if _, err := s.SessionRepository.Get(ctx, sessionUID); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListBySession(ctx, sessionUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list attendance records", logging.ErrKey, err)
		return nil, err
	}
	return records, nil
}

// AddManualRecord inserts one attendance record created by hand. A record
// already present for the (session, roster entry) pair surfaces as a
// conflict to the caller, unlike the import path which absorbs it.
func (s *AttendanceService) AddManualRecord(ctx context.Context, record *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if record == nil || record.SessionUID == "" || record.RosterEntryUID == "" {
		return nil, domain.NewValidationError("session UID and roster entry UID are required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("session_uid", record.SessionUID))

	if _, err := s.SessionRepository.Get(ctx, record.SessionUID); err != nil {
		return nil, err
	}
	if _, err := s.RosterRepository.Get(ctx, record.RosterEntryUID); err != nil {
		return nil, err
	}

	record.UID = uuid.New().String()
	if err := s.AttendanceRepository.Create(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to insert manual attendance record", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "manual attendance record added",
		"attendance_uid", record.UID,
		"roster_entry_uid", record.RosterEntryUID)

	return record, nil
}
