// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// ResolveParticipant classifies one provider display name against the
// roster snapshot.
//
// A roster entry is a candidate when any of four containment relations
// holds between the lowercased names: participant name contains the handle,
// the handle contains the participant name, participant name contains the
// full name, or the full name contains the participant name.
//
// The first candidate in roster iteration order wins. The roster snapshot
// is ordered by full name, so ties between over-matching entries resolve to
// whichever sorts first. This is a deliberate first-match policy, not a
// best-match one; replacing it with similarity scoring would be a behavior
// change, not a fix. Known limitation: very short handles can over-match.
//
// The function performs no I/O and is pure given its two inputs.
func ResolveParticipant(displayName string, roster []*models.RosterEntry) models.MatchResult {
	participant := strings.ToLower(displayName)

	for _, entry := range roster {
		handle := strings.ToLower(entry.Handle)
		fullName := strings.ToLower(entry.FullName)

		if strings.Contains(participant, handle) ||
			strings.Contains(handle, participant) ||
			strings.Contains(participant, fullName) ||
			strings.Contains(fullName, participant) {
			return models.MatchResult{Matched: true, Entry: entry}
		}
	}

	return models.MatchResult{Matched: false, Reason: models.ReasonNotInRoster}
}
