// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// Admin represents a local administrator account. Passwords are stored as
// bcrypt hashes, never in plain text.
type Admin struct {
	UID          string     `json:"uid"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
