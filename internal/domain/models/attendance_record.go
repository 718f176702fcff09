// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// AttendanceRecord represents one confirmed (session, roster entry)
// attendance fact. At most one record exists per pair; the store enforces
// the invariant with a unique constraint.
type AttendanceRecord struct {
	UID             string     `json:"uid"`
	SessionUID      string     `json:"session_uid"`
	RosterEntryUID  string     `json:"roster_entry_uid"`
	JoinTime        *time.Time `json:"join_time,omitempty"`
	LeaveTime       *time.Time `json:"leave_time,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// AttendanceRecordWithRoster is an attendance record joined with the fields
// of its roster entry, as returned by session-level listings.
type AttendanceRecordWithRoster struct {
	AttendanceRecord
	Handle   string `json:"handle"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}
