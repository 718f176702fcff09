// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

func testSession() *models.Session {
	return &models.Session{
		UID:               "session-1",
		Title:             "Weekly Sync",
		Date:              "2026-03-10",
		ExternalMeetingID: "123456789",
		JoinLink:          "https://zoom.us/j/123456789",
	}
}

func testRecords(n int) []*models.AttendanceRecordWithRoster {
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	records := make([]*models.AttendanceRecordWithRoster, 0, n)
	for i := 0; i < n; i++ {
		join := base.Add(time.Duration(i) * time.Minute)
		leave := join.Add(45 * time.Minute)
		records = append(records, &models.AttendanceRecordWithRoster{
			AttendanceRecord: models.AttendanceRecord{
				UID:             fmt.Sprintf("att-%03d", i),
				SessionUID:      "session-1",
				RosterEntryUID:  fmt.Sprintf("u-%03d", i),
				JoinTime:        &join,
				LeaveTime:       &leave,
				DurationSeconds: 2700,
			},
			Handle:   fmt.Sprintf("handle%03d", i),
			FullName: fmt.Sprintf("Person %03d", i),
		})
	}
	return records
}

func TestBuildDocumentSinglePage(t *testing.T) {
	doc := BuildDocument(testSession(), testRecords(5))

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0], 5)
	assert.Equal(t, 5, doc.PresentCount)
	assert.Equal(t, "Weekly Sync", doc.SessionTitle)

	first := doc.Pages[0][0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "Person 000", first.FullName)
	assert.Equal(t, "handle000", first.Handle)
	assert.Equal(t, "14:00:00", first.JoinTime)
	assert.Equal(t, "14:45:00", first.LeaveTime)
	assert.Equal(t, "45 min", first.Duration)
}

func TestBuildDocumentPagination(t *testing.T) {
	// Enough rows to spill onto a third page: the first page holds fewer
	// rows than continuation pages because of the header blocks.
	total := firstPageRows() + continuationRows() + 8
	doc := BuildDocument(testSession(), testRecords(total))

	require.Len(t, doc.Pages, 3)
	assert.Len(t, doc.Pages[0], firstPageRows())
	assert.Len(t, doc.Pages[1], continuationRows())
	assert.Len(t, doc.Pages[2], 8)

	// Every record appears exactly once, numbered continuously across
	// page boundaries.
	next := 1
	for _, page := range doc.Pages {
		for _, row := range page {
			assert.Equal(t, next, row.Number)
			assert.Equal(t, fmt.Sprintf("Person %03d", next-1), row.FullName)
			next++
		}
	}
	assert.Equal(t, total+1, next)
}

func TestBuildDocumentEmptyLedger(t *testing.T) {
	doc := BuildDocument(testSession(), nil)

	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Pages[0])
	assert.Zero(t, doc.PresentCount)
}

func TestBuildDocumentTitleFallback(t *testing.T) {
	session := testSession()
	session.Title = ""

	doc := BuildDocument(session, nil)

	assert.Equal(t, "Zoom Meeting", doc.SessionTitle)
}

func TestBuildDocumentAbsentTimes(t *testing.T) {
	records := []*models.AttendanceRecordWithRoster{
		{
			AttendanceRecord: models.AttendanceRecord{
				UID:            "att-1",
				SessionUID:     "session-1",
				RosterEntryUID: "u-1",
			},
			Handle:   "manual",
			FullName: "Added By Hand",
		},
	}

	doc := BuildDocument(testSession(), records)

	row := doc.Pages[0][0]
	assert.Equal(t, "N/A", row.JoinTime)
	assert.Equal(t, "N/A", row.LeaveTime)
	assert.Equal(t, "0 min", row.Duration)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 min"},
		{-1, "0 min"},
		{20, "0 min"},
		{30, "1 min"},
		{60, "1 min"},
		{125, "2 min"},
		{2700, "45 min"},
		{3661, "61 min"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "N/A", FormatClock(nil))

	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, 3, 10, 16, 30, 5, 0, loc)
	assert.Equal(t, "14:30:05", FormatClock(&at))
}
