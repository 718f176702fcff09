// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/utils"
)

// SessionService handles session catalog management.
type SessionService struct {
	SessionRepository domain.SessionRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessionRepository domain.SessionRepository) *SessionService {
	return &SessionService{SessionRepository: sessionRepository}
}

// ServiceReady checks if the service is ready for use.
func (s *SessionService) ServiceReady() bool {
	return s.SessionRepository != nil
}

// ListSessions returns all sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}
	return s.SessionRepository.ListAll(ctx)
}

// GetSession returns one session by UID.
func (s *SessionService) GetSession(ctx context.Context, sessionUID string) (*models.Session, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if sessionUID == "" {
		return nil, domain.NewValidationError("session UID is required")
	}
	return s.SessionRepository.Get(ctx, sessionUID)
}

// CreateSession registers a new session. The external meeting ID is
// extracted from the join link when present.
func (s *SessionService) CreateSession(ctx context.Context, session *models.Session) (*models.Session, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if session == nil {
		return nil, domain.NewValidationError("session is required")
	}
	session.JoinLink = strings.TrimSpace(session.JoinLink)
	session.Date = strings.TrimSpace(session.Date)
	if session.JoinLink == "" {
		return nil, domain.NewValidationError("join link is required")
	}
	if session.Date == "" {
		return nil, domain.NewValidationError("session date is required")
	}

	session.UID = uuid.New().String()
	session.ExternalMeetingID = utils.ExtractMeetingID(session.JoinLink)

	if err := s.SessionRepository.Create(ctx, session); err != nil {
		slog.WarnContext(ctx, "failed to create session", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "session created",
		"session_uid", session.UID,
		"external_meeting_id", session.ExternalMeetingID)
	return session, nil
}

// DeleteSession removes a session and, through the ledger's cascade, all of
// its attendance records.
func (s *SessionService) DeleteSession(ctx context.Context, sessionUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}
	if sessionUID == "" {
		return domain.NewValidationError("session UID is required")
	}

	if err := s.SessionRepository.Delete(ctx, sessionUID); err != nil {
		slog.WarnContext(ctx, "failed to delete session", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "session deleted", "session_uid", sessionUID)
	return nil
}
