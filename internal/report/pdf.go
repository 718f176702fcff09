// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// A4 portrait dimensions in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
)

const fontFamily = "Helvetica"

// Render draws the paginated document as a PDF to w. The timestamp is used
// for the footer line and the PDF creation date; everything else in the
// output is a function of the document.
func Render(doc *Document, generatedAt time.Time, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)

	for pageIndex, rows := range doc.Pages {
		pdf.AddPage()

		y := pageMargin + rowHeight
		if pageIndex == 0 {
			drawHeader(pdf, doc)
			y = firstTableY
		}

		pdf.SetFont(fontFamily, "", 9)
		for _, row := range rows {
			drawRow(pdf, row, y)
			y += rowHeight
		}

		drawFooter(pdf, generatedAt)
	}

	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, doc *Document) {
	pdf.SetFont(fontFamily, "B", 20)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.CellFormat(pageWidth-2*pageMargin, 24, "Attendance Report", "", 1, "C", false, 0, "")

	meetingID := doc.ExternalMeetingID
	if meetingID == "" {
		meetingID = "N/A"
	}

	pdf.SetFont(fontFamily, "B", 12)
	pdf.Text(pageMargin, 110, fmt.Sprintf("Meeting: %s", doc.SessionTitle))

	pdf.SetFont(fontFamily, "", 10)
	pdf.Text(pageMargin, 128, fmt.Sprintf("Date: %s", doc.Date))
	pdf.Text(pageMargin, 142, fmt.Sprintf("Meeting ID: %s", meetingID))
	pdf.Text(pageMargin, 156, fmt.Sprintf("Join Link: %s", doc.JoinLink))

	pdf.SetFont(fontFamily, "B", 11)
	pdf.Text(pageMargin, 180, fmt.Sprintf("Total Present: %d", doc.PresentCount))

	headerY := firstTableY - rowHeight
	pdf.SetFont(fontFamily, "B", 10)
	pdf.Text(colNumberX, headerY, "No.")
	pdf.Text(colNameX, headerY, "Full Name")
	pdf.Text(colHandleX, headerY, "Handle")
	pdf.Text(colJoinX, headerY, "Join Time")
	pdf.Text(colLeaveX, headerY, "Leave Time")
	pdf.Text(colDurationX, headerY, "Duration")

	pdf.Line(pageMargin, headerY+5, pageWidth-pageMargin, headerY+5)
}

func drawRow(pdf *fpdf.Fpdf, row Row, y float64) {
	pdf.Text(colNumberX, y, fmt.Sprintf("%d.", row.Number))
	pdf.Text(colNameX, y, row.FullName)
	pdf.Text(colHandleX, y, row.Handle)
	pdf.Text(colJoinX, y, row.JoinTime)
	pdf.Text(colLeaveX, y, row.LeaveTime)
	pdf.Text(colDurationX, y, row.Duration)
}

func drawFooter(pdf *fpdf.Fpdf, generatedAt time.Time) {
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetXY(pageMargin, pageHeight-pageMargin-10)
	footer := fmt.Sprintf("Generated on %s", generatedAt.Format("2006-01-02 15:04:05 MST"))
	pdf.CellFormat(pageWidth-2*pageMargin, 10, footer, "", 0, "C", false, 0, "")
}
