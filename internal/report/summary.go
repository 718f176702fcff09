// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// BuildTextSummary renders a plain-text attendance summary for one session,
// one numbered line per present attendee.
func BuildTextSummary(session *models.Session, records []*models.AttendanceRecordWithRoster) string {
	title := session.Title
	if title == "" {
		title = "Zoom Meeting"
	}

	var b strings.Builder
	b.WriteString("Attendance Report\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Meeting: %s\n", title)
	fmt.Fprintf(&b, "Date: %s\n", session.Date)
	fmt.Fprintf(&b, "Total Present: %d\n\n", len(records))

	b.WriteString("Attendees:\n")
	for i, record := range records {
		fmt.Fprintf(&b, "%d. %s (%s) - %s\n",
			i+1, record.FullName, record.Handle, FormatDuration(record.DurationSeconds))
	}

	return b.String()
}
