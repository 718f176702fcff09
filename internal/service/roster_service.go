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
)

// RosterService handles roster entry management.
type RosterService struct {
	RosterRepository domain.RosterRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(rosterRepository domain.RosterRepository) *RosterService {
	return &RosterService{RosterRepository: rosterRepository}
}

// ServiceReady checks if the service is ready for use.
func (s *RosterService) ServiceReady() bool {
	return s.RosterRepository != nil
}

// ListEntries returns the full roster ordered by full name.
func (s *RosterService) ListEntries(ctx context.Context) ([]*models.RosterEntry, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("service not initialized")
	}
	return s.RosterRepository.ListAll(ctx)
}

// GetEntry returns one roster entry by UID.
func (s *RosterService) GetEntry(ctx context.Context, entryUID string) (*models.RosterEntry, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if entryUID == "" {
		return nil, domain.NewValidationError("roster entry UID is required")
	}
	return s.RosterRepository.Get(ctx, entryUID)
}

// CreateEntry registers a new roster entry. Handles are unique; a duplicate
// surfaces as a conflict.
func (s *RosterService) CreateEntry(ctx context.Context, entry *models.RosterEntry) (*models.RosterEntry, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if err := validateRosterEntry(entry); err != nil {
		return nil, err
	}

	entry.UID = uuid.New().String()
	if err := s.RosterRepository.Create(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to create roster entry", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "roster entry created",
		"roster_entry_uid", entry.UID, "handle", entry.Handle)
	return entry, nil
}

// UpdateEntry updates an existing roster entry.
func (s *RosterService) UpdateEntry(ctx context.Context, entry *models.RosterEntry) (*models.RosterEntry, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	if entry == nil || entry.UID == "" {
		return nil, domain.NewValidationError("roster entry UID is required")
	}
	if err := validateRosterEntry(entry); err != nil {
		return nil, err
	}

	if err := s.RosterRepository.Update(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to update roster entry", logging.ErrKey, err)
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a roster entry and, through the ledger's cascade, all
// of its attendance records.
func (s *RosterService) DeleteEntry(ctx context.Context, entryUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}
	if entryUID == "" {
		return domain.NewValidationError("roster entry UID is required")
	}

	if err := s.RosterRepository.Delete(ctx, entryUID); err != nil {
		slog.WarnContext(ctx, "failed to delete roster entry", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "roster entry deleted", "roster_entry_uid", entryUID)
	return nil
}

func validateRosterEntry(entry *models.RosterEntry) error {
	if entry == nil {
		return domain.NewValidationError("roster entry is required")
	}
	entry.Handle = strings.TrimSpace(entry.Handle)
	entry.FullName = strings.TrimSpace(entry.FullName)
	if entry.Handle == "" {
		return domain.NewValidationError("handle is required")
	}
	if entry.FullName == "" {
		return domain.NewValidationError("full name is required")
	}
	return nil
}
