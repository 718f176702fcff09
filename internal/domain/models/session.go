// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// Session represents one scheduled meeting instance tracked by the system.
// ExternalMeetingID is the numeric meeting ID extracted from the join link;
// past instances of the meeting are addressed by their provider UUID, which
// is supplied per reconciliation run rather than stored here.
type Session struct {
	UID               string     `json:"uid"`
	JoinLink          string     `json:"join_link"`
	ExternalMeetingID string     `json:"external_meeting_id,omitempty"`
	Title             string     `json:"title,omitempty"`
	Date              string     `json:"date"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}
