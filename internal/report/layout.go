// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package report renders a ledger snapshot for one session into a
// paginated attendance document. Layout is computed separately from
// drawing so the pagination arithmetic stays testable without decoding
// PDF output.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// Page geometry in PDF points, A4 portrait, fixed for the single report
// template this service produces.
const (
	pageMargin = 50.0
	// maxCursorY is the usable vertical limit; the next row past it starts
	// a new page.
	maxCursorY = 700.0
	rowHeight  = 18.0
	// firstTableY is where the table begins on the first page, below the
	// title, session metadata and summary blocks.
	firstTableY = 230.0
)

// Column x offsets for the attendance table.
const (
	colNumberX   = 50.0
	colNameX     = 90.0
	colHandleX   = 220.0
	colJoinX     = 320.0
	colLeaveX    = 400.0
	colDurationX = 480.0
)

// Row is one rendered table line with all fields pre-formatted.
type Row struct {
	Number    int
	FullName  string
	Handle    string
	JoinTime  string
	LeaveTime string
	Duration  string
}

// Document is the paginated logical report. It is a pure function of the
// session and its ledger snapshot; the footer timestamp is supplied at
// draw time and is the only non-deterministic field of the output.
type Document struct {
	SessionTitle      string
	Date              string
	ExternalMeetingID string
	JoinLink          string
	PresentCount      int

	// Pages holds the table rows split by page. The column header is drawn
	// on the first page only; continuation pages resume the table without
	// repeating it. Known limitation, kept to match the established report
	// format.
	Pages [][]Row
}

// firstPageRows is how many table rows fit on the first page below the
// header blocks.
func firstPageRows() int {
	return int(math.Floor((maxCursorY - firstTableY) / rowHeight))
}

// continuationRows is how many table rows fit on a continuation page.
func continuationRows() int {
	return int(math.Floor((maxCursorY - pageMargin) / rowHeight))
}

// BuildDocument lays out the report for one session. Rows keep the order
// of the ledger snapshot (join time ascending) and every record appears
// exactly once across pages.
func BuildDocument(session *models.Session, records []*models.AttendanceRecordWithRoster) *Document {
	title := session.Title
	if title == "" {
		title = "Zoom Meeting"
	}

	doc := &Document{
		SessionTitle:      title,
		Date:              session.Date,
		ExternalMeetingID: session.ExternalMeetingID,
		JoinLink:          session.JoinLink,
		PresentCount:      len(records),
	}

	var page []Row
	capacity := firstPageRows()

	for i, record := range records {
		if len(page) == capacity {
			doc.Pages = append(doc.Pages, page)
			page = nil
			capacity = continuationRows()
		}
		page = append(page, Row{
			Number:    i + 1,
			FullName:  record.FullName,
			Handle:    record.Handle,
			JoinTime:  FormatClock(record.JoinTime),
			LeaveTime: FormatClock(record.LeaveTime),
			Duration:  FormatDuration(record.DurationSeconds),
		})
	}
	doc.Pages = append(doc.Pages, page)

	return doc
}

// FormatClock renders an optional timestamp as a wall-clock time in UTC,
// or "N/A" when absent.
func FormatClock(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.UTC().Format("15:04:05")
}

// FormatDuration renders a duration in seconds as whole minutes rounded to
// the nearest minute. Zero or absent durations render as "0 min".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0 min"
	}
	return fmt.Sprintf("%d min", int(math.Round(float64(seconds)/60)))
}
