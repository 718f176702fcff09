// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/report"
)

// ReportService renders attendance reports from the ledger.
type ReportService struct {
	SessionRepository    domain.SessionRepository
	AttendanceRepository domain.AttendanceRepository
}

// NewReportService creates a new ReportService.
func NewReportService(
	sessionRepository domain.SessionRepository,
	attendanceRepository domain.AttendanceRepository,
) *ReportService {
	return &ReportService{
		SessionRepository:    sessionRepository,
		AttendanceRepository: attendanceRepository,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ReportService) ServiceReady() bool {
	return s.SessionRepository != nil && s.AttendanceRepository != nil
}

// GeneratePDF writes a PDF attendance report for the session to w. A session
// with an empty ledger is a not-found condition rather than an empty report.
func (s *ReportService) GeneratePDF(ctx context.Context, sessionUID string, w io.Writer) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("service not initialized")
	}
	if sessionUID == "" {
		return domain.NewValidationError("session UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("session_uid", sessionUID))

	session, records, err := s.loadSnapshot(ctx, sessionUID)
	if err != nil {
		return err
	}

	doc := report.BuildDocument(session, records)
	if err := report.Render(doc, time.Now(), w); err != nil {
		slog.ErrorContext(ctx, "failed to render attendance report", logging.ErrKey, err)
		return domain.NewInternalError("failed to render attendance report", err)
	}

	slog.InfoContext(ctx, "attendance report rendered",
		"present_count", doc.PresentCount,
		"pages", len(doc.Pages))
	return nil
}

// TextSummary returns a plain-text attendance summary for the session.
func (s *ReportService) TextSummary(ctx context.Context, sessionUID string) (string, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return "", domain.NewUnavailableError("service not initialized")
	}
	if sessionUID == "" {
		return "", domain.NewValidationError("session UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("session_uid", sessionUID))

	session, records, err := s.loadSnapshot(ctx, sessionUID)
	if err != nil {
		return "", err
	}
	return report.BuildTextSummary(session, records), nil
}

// ReportFileName builds the download name for a PDF report. The timestamp
// keeps repeated downloads of the same session from colliding.
func ReportFileName(sessionUID string, at time.Time) string {
	return fmt.Sprintf("attendance_%s_%d.pdf", sessionUID, at.UnixMilli())
}

func (s *ReportService) loadSnapshot(ctx context.Context, sessionUID string) (*models.Session, []*models.AttendanceRecordWithRoster, error) {
	session, err := s.SessionRepository.Get(ctx, sessionUID)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.AttendanceRepository.ListBySession(ctx, sessionUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load ledger for report", logging.ErrKey, err)
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, domain.NewNotFoundError("no attendance records found for session")
	}
	return session, records, nil
}
