// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// ParticipantEvent is the raw attendance unit returned by the meeting
// provider for one past session instance. It exists only for the duration
// of a reconciliation run.
type ParticipantEvent struct {
	Name            string
	JoinTime        *time.Time
	LeaveTime       *time.Time
	DurationSeconds int
}
