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
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/concurrent"
)

// ReconciliationService pulls participant events for one past session from
// the meeting provider, classifies them against the roster, and writes
// accepted matches into the attendance ledger.
type ReconciliationService struct {
	SessionRepository    domain.SessionRepository
	RosterRepository     domain.RosterRepository
	AttendanceRepository domain.AttendanceRepository
	Provider             domain.ParticipantProvider
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	sessionRepository domain.SessionRepository,
	rosterRepository domain.RosterRepository,
	attendanceRepository domain.AttendanceRepository,
	provider domain.ParticipantProvider,
) *ReconciliationService {
	return &ReconciliationService{
		SessionRepository:    sessionRepository,
		RosterRepository:     rosterRepository,
		AttendanceRepository: attendanceRepository,
		Provider:             provider,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ReconciliationService) ServiceReady() bool {
	return s.SessionRepository != nil &&
		s.RosterRepository != nil &&
		s.AttendanceRepository != nil &&
		s.Provider != nil
}

// Reconcile runs one fetch -> match -> dedup-insert pass for a single
// session. Re-running with the same provider data is safe: records already
// in the ledger count as skipped instead of being written twice, so a
// second identical run yields added = 0 and skipped equal to the first
// run's approved count.
func (s *ReconciliationService) Reconcile(ctx context.Context, sessionUID, sessionExternalUUID string) (*models.ReconciliationSummary, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}

	if sessionUID == "" {
		return nil, domain.NewValidationError("session UID is required")
	}
	if sessionExternalUUID == "" {
		return nil, domain.NewValidationError("session external UUID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("session_uid", sessionUID))

	// Fail fast on an unknown session before touching the provider.
	if _, err := s.SessionRepository.Get(ctx, sessionUID); err != nil {
		slog.WarnContext(ctx, "session lookup failed", logging.ErrKey, err)
		return nil, err
	}

	// The provider fetch and the roster snapshot are independent reads, so
	// they run concurrently. One roster snapshot for the whole run keeps
	// matching consistent and avoids a query per participant.
	var (
		events []models.ParticipantEvent
		roster []*models.RosterEntry
	)
	pool := concurrent.NewWorkerPool(2)
	err := pool.Run(ctx,
		func() error {
			var fetchErr error
			events, fetchErr = s.Provider.GetPastSessionParticipants(ctx, sessionExternalUUID)
			if fetchErr != nil {
				slog.ErrorContext(ctx, "failed to fetch participants from provider", logging.ErrKey, fetchErr)
			}
			return fetchErr
		},
		func() error {
			var listErr error
			roster, listErr = s.RosterRepository.ListAll(ctx)
			if listErr != nil {
				slog.ErrorContext(ctx, "failed to load roster snapshot", logging.ErrKey, listErr)
			}
			return listErr
		},
	)
	if err != nil {
		return nil, err
	}

	summary := &models.ReconciliationSummary{
		Total:                len(events),
		ApprovedParticipants: []models.ApprovedParticipant{},
		RejectedParticipants: []models.RejectedParticipant{},
	}

	for _, event := range events {
		result := ResolveParticipant(event.Name, roster)
		if !result.Matched {
			summary.Rejected++
			summary.RejectedParticipants = append(summary.RejectedParticipants, models.RejectedParticipant{
				Name:    event.Name,
				Reason:  result.Reason,
				Outcome: models.OutcomeRejected,
			})
			continue
		}

		outcome, err := s.recordAttendance(ctx, sessionUID, result.Entry.UID, event)
		if err != nil {
			return nil, err
		}

		switch outcome {
		case models.OutcomeAdded:
			summary.Added++
		case models.OutcomeAlreadyExists:
			summary.Skipped++
		}
		summary.ApprovedParticipants = append(summary.ApprovedParticipants, models.ApprovedParticipant{
			Name:           event.Name,
			MatchedEntry:   result.Entry.FullName,
			Handle:         result.Entry.Handle,
			RosterEntryUID: result.Entry.UID,
			Outcome:        outcome,
		})
	}

	summary.Approved = summary.Added + summary.Skipped

	slog.InfoContext(ctx, "reconciliation run completed",
		"total", summary.Total,
		"approved", summary.Approved,
		"added", summary.Added,
		"skipped", summary.Skipped,
		"rejected", summary.Rejected,
	)

	return summary, nil
}

// recordAttendance writes one accepted match into the ledger unless a
// record for the pair already exists. The existence check is advisory; the
// ledger's unique constraint closes the race with a concurrent run, and a
// conflict from a racing insert is counted as a skip rather than an error.
func (s *ReconciliationService) recordAttendance(ctx context.Context, sessionUID, rosterEntryUID string, event models.ParticipantEvent) (string, error) {
	exists, err := s.AttendanceRepository.Exists(ctx, sessionUID, rosterEntryUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check ledger for existing record", logging.ErrKey, err)
		return "", err
	}
	if exists {
		return models.OutcomeAlreadyExists, nil
	}

	record := &models.AttendanceRecord{
		UID:             uuid.New().String(),
		SessionUID:      sessionUID,
		RosterEntryUID:  rosterEntryUID,
		JoinTime:        event.JoinTime,
		LeaveTime:       event.LeaveTime,
		DurationSeconds: event.DurationSeconds,
	}
	if err := s.AttendanceRepository.Create(ctx, record); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			slog.DebugContext(ctx, "concurrent run inserted the record first",
				"roster_entry_uid", rosterEntryUID)
			return models.OutcomeAlreadyExists, nil
		}
		slog.ErrorContext(ctx, "failed to insert attendance record", logging.ErrKey, err)
		return "", err
	}

	return models.OutcomeAdded, nil
}
