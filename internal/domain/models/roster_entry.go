// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// RosterEntry represents a locally registered participant eligible to be
// matched against attendance data pulled from the meeting provider.
type RosterEntry struct {
	UID       string     `json:"uid"`
	Handle    string     `json:"handle"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
