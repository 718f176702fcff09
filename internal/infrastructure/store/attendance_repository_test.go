// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestSession(t *testing.T, db *DB) *models.Session {
	t.Helper()
	session := &models.Session{
		UID:               uuid.New().String(),
		JoinLink:          "https://zoom.us/j/123456789",
		ExternalMeetingID: "123456789",
		Title:             "Weekly sync",
		Date:              "2026-03-02",
	}
	require.NoError(t, NewSessionRepository(db).Create(context.Background(), session))
	return session
}

func createTestRosterEntry(t *testing.T, db *DB, handle, fullName string) *models.RosterEntry {
	t.Helper()
	entry := &models.RosterEntry{
		UID:      uuid.New().String(),
		Handle:   handle,
		FullName: fullName,
	}
	require.NoError(t, NewRosterRepository(db).Create(context.Background(), entry))
	return entry
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAttendanceUniquenessInvariant(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	session := createTestSession(t, db)
	entry := createTestRosterEntry(t, db, "johnsmith99", "John Smith")

	record := &models.AttendanceRecord{
		UID:             uuid.New().String(),
		SessionUID:      session.UID,
		RosterEntryUID:  entry.UID,
		JoinTime:        timePtr(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)),
		LeaveTime:       timePtr(time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)),
		DurationSeconds: 3600,
	}
	require.NoError(t, repo.Create(ctx, record))

	exists, err := repo.Exists(ctx, session.UID, entry.UID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A second record for the same (session, roster entry) pair must fail
	// with a conflict, regardless of its other fields.
	duplicate := &models.AttendanceRecord{
		UID:            uuid.New().String(),
		SessionUID:     session.UID,
		RosterEntryUID: entry.UID,
	}
	err = repo.Create(ctx, duplicate)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))

	records, err := repo.ListBySession(ctx, session.UID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceExistsForUnknownPair(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	exists, err := repo.Exists(ctx, "no-session", "no-entry")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListBySessionOrdersByJoinTimeMissingFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)

	session := createTestSession(t, db)
	late := createTestRosterEntry(t, db, "late", "Late Joiner")
	early := createTestRosterEntry(t, db, "early", "Early Joiner")
	manual := createTestRosterEntry(t, db, "manual", "Manual Entry")

	require.NoError(t, repo.Create(ctx, &models.AttendanceRecord{
		UID:             uuid.New().String(),
		SessionUID:      session.UID,
		RosterEntryUID:  late.UID,
		JoinTime:        timePtr(time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)),
		DurationSeconds: 1800,
	}))
	require.NoError(t, repo.Create(ctx, &models.AttendanceRecord{
		UID:             uuid.New().String(),
		SessionUID:      session.UID,
		RosterEntryUID:  early.UID,
		JoinTime:        timePtr(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)),
		DurationSeconds: 3600,
	}))
	// Manual entries may carry no join time; they sort before timed rows.
	require.NoError(t, repo.Create(ctx, &models.AttendanceRecord{
		UID:            uuid.New().String(),
		SessionUID:     session.UID,
		RosterEntryUID: manual.UID,
	}))

	records, err := repo.ListBySession(ctx, session.UID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "manual", records[0].Handle)
	assert.Nil(t, records[0].JoinTime)
	assert.Equal(t, "early", records[1].Handle)
	assert.Equal(t, "late", records[2].Handle)

	// Roster fields come back joined.
	assert.Equal(t, "Early Joiner", records[1].FullName)
}

func TestDeletingSessionCascadesToLedger(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	attendanceRepo := NewAttendanceRepository(db)
	sessionRepo := NewSessionRepository(db)

	session := createTestSession(t, db)
	entry := createTestRosterEntry(t, db, "casc", "Cascade Target")

	require.NoError(t, attendanceRepo.Create(ctx, &models.AttendanceRecord{
		UID:            uuid.New().String(),
		SessionUID:     session.UID,
		RosterEntryUID: entry.UID,
	}))

	require.NoError(t, sessionRepo.Delete(ctx, session.UID))

	exists, err := attendanceRepo.Exists(ctx, session.UID, entry.UID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeletingRosterEntryCascadesToLedger(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	attendanceRepo := NewAttendanceRepository(db)
	rosterRepo := NewRosterRepository(db)

	session := createTestSession(t, db)
	entry := createTestRosterEntry(t, db, "gone", "Removed Person")

	require.NoError(t, attendanceRepo.Create(ctx, &models.AttendanceRecord{
		UID:            uuid.New().String(),
		SessionUID:     session.UID,
		RosterEntryUID: entry.UID,
	}))

	require.NoError(t, rosterRepo.Delete(ctx, entry.UID))

	records, err := attendanceRepo.ListBySession(ctx, session.UID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
