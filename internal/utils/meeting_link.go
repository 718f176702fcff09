// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import "regexp"

// meetingIDPattern matches the numeric meeting ID in Zoom join links such
// as zoom.us/j/1234567890 or zoom.us/meeting/1234567890.
var meetingIDPattern = regexp.MustCompile(`zoom\.us/(?:j|meeting)/(\d+)`)

// ExtractMeetingID extracts the numeric meeting ID from a Zoom join link.
// It returns an empty string when the link carries no recognizable ID.
func ExtractMeetingID(joinLink string) string {
	match := meetingIDPattern.FindStringSubmatch(joinLink)
	if match == nil {
		return ""
	}
	return match[1]
}
