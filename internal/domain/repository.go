// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// RosterRepository defines the interface for roster entry storage operations.
// This interface can be implemented by different storage backends.
type RosterRepository interface {
	Create(ctx context.Context, entry *models.RosterEntry) error
	Get(ctx context.Context, entryUID string) (*models.RosterEntry, error)
	GetByHandle(ctx context.Context, handle string) (*models.RosterEntry, error)
	Update(ctx context.Context, entry *models.RosterEntry) error
	Delete(ctx context.Context, entryUID string) error

	// ListAll returns the full roster ordered by full name ascending. The
	// identity matcher depends on this ordering for its first-match policy.
	ListAll(ctx context.Context) ([]*models.RosterEntry, error)
}

// SessionRepository defines the interface for session storage operations.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionUID string) (*models.Session, error)
	Delete(ctx context.Context, sessionUID string) error

	// ListAll returns all sessions ordered by date descending.
	ListAll(ctx context.Context) ([]*models.Session, error)
}

// AttendanceRepository defines the interface for the attendance ledger.
// Implementations must enforce at most one record per
// (session, roster entry) pair, returning a conflict error on violation
// even when the caller races a concurrent insert.
type AttendanceRepository interface {
	Exists(ctx context.Context, sessionUID, rosterEntryUID string) (bool, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error

	// ListBySession returns the ledger for one session joined with roster
	// fields, ordered by join time ascending. Records without a join time
	// sort first.
	ListBySession(ctx context.Context, sessionUID string) ([]*models.AttendanceRecordWithRoster, error)
}

// AdminRepository defines the interface for administrator account storage.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
