// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// AttendanceRepository is the SQLite implementation of the attendance
// ledger. The at-most-one-record-per-(session, roster entry) invariant is
// enforced by the table's unique constraint, so a duplicate insert fails
// with a conflict even when two reconciliation runs race each other.
type AttendanceRepository struct {
	db *DB
}

// NewAttendanceRepository creates a new SQLite attendance repository.
func NewAttendanceRepository(db *DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

var _ domain.AttendanceRepository = (*AttendanceRepository)(nil)

// Exists reports whether the ledger already holds a record for the given
// (session, roster entry) pair.
func (r *AttendanceRepository) Exists(ctx context.Context, sessionUID, rosterEntryUID string) (bool, error) {
	var one int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM attendance_records WHERE session_uid = ? AND roster_entry_uid = ?`,
		sessionUID, rosterEntryUID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapSQLiteError(err, "")
	}
	return true, nil
}

// Create inserts a new attendance record. A second record for the same
// (session, roster entry) pair fails with a conflict error.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	now := time.Now().UTC()
	record.CreatedAt = &now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO attendance_records
		 (uid, session_uid, roster_entry_uid, join_time, leave_time, duration_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.UID, record.SessionUID, record.RosterEntryUID,
		nullableTime(record.JoinTime), nullableTime(record.LeaveTime),
		record.DurationSeconds, now.Format(time.RFC3339),
	)
	if err != nil {
		return mapSQLiteError(err, "attendance record already exists")
	}
	return nil
}

// ListBySession returns the ledger for one session joined with roster
// fields, ordered by join time ascending. Records without a join time sort
// first.
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionUID string) ([]*models.AttendanceRecordWithRoster, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT a.uid, a.session_uid, a.roster_entry_uid, a.join_time, a.leave_time,
		        a.duration_seconds, a.created_at, s.handle, s.full_name, s.email
		 FROM attendance_records a
		 JOIN roster_entries s ON a.roster_entry_uid = s.uid
		 WHERE a.session_uid = ?
		 ORDER BY a.join_time ASC NULLS FIRST`, sessionUID)
	if err != nil {
		return nil, mapSQLiteError(err, "")
	}
	defer func() { _ = rows.Close() }()

	var records []*models.AttendanceRecordWithRoster
	for rows.Next() {
		var record models.AttendanceRecordWithRoster
		var joinTime, leaveTime sql.NullString
		var createdAt string

		if err := rows.Scan(&record.UID, &record.SessionUID, &record.RosterEntryUID,
			&joinTime, &leaveTime, &record.DurationSeconds, &createdAt,
			&record.Handle, &record.FullName, &record.Email); err != nil {
			return nil, mapSQLiteError(err, "")
		}

		if record.JoinTime, err = scanNullableTime(joinTime); err != nil {
			return nil, domain.NewInternalError("invalid join time in ledger", err)
		}
		if record.LeaveTime, err = scanNullableTime(leaveTime); err != nil {
			return nil, domain.NewInternalError("invalid leave time in ledger", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			record.CreatedAt = &t
		}

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapSQLiteError(err, "")
	}

	return records, nil
}
