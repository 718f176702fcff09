// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Per-participant reconciliation outcomes. These strings are part of the
// summary contract consumed by the admin UI.
const (
	OutcomeAdded         = "added"
	OutcomeAlreadyExists = "already exists"
	OutcomeRejected      = "rejected"

	// ReasonNotInRoster is the rejection reason for participants with no
	// containment relation to any roster entry.
	ReasonNotInRoster = "not found in roster"
)

// MatchResult is the classification of one participant event against the
// roster snapshot. Entry is set only when Matched is true; Reason is set
// only when it is false.
type MatchResult struct {
	Matched bool
	Entry   *RosterEntry
	Reason  string
}

// ApprovedParticipant is one matched participant in the reconciliation
// summary, carrying the original provider display name and the roster
// entry it resolved to.
type ApprovedParticipant struct {
	Name           string `json:"name"`
	MatchedEntry   string `json:"matched_entry"`
	Handle         string `json:"handle"`
	RosterEntryUID string `json:"roster_entry_uid"`
	Outcome        string `json:"outcome"`
}

// RejectedParticipant is one unmatched participant in the reconciliation
// summary.
type RejectedParticipant struct {
	Name    string `json:"name"`
	Reason  string `json:"reason"`
	Outcome string `json:"outcome"`
}

// ReconciliationSummary is the result of one reconciliation run. The count
// field names are a contract with the UI layer and must not be renamed.
// Approved is always Added + Skipped.
type ReconciliationSummary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Added    int `json:"added"`
	Skipped  int `json:"skipped"`
	Rejected int `json:"rejected"`

	ApprovedParticipants []ApprovedParticipant `json:"approved_participants"`
	RejectedParticipants []RejectedParticipant `json:"rejected_participants"`
}
