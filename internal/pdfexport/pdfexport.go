// Package pdfexport renders a validated weekly plan to a PDF byte stream.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/claude/coachplan/internal/plan"
)

// Column widths in millimeters for the plan table on an A4 page.
var colWidths = []float64{18, 92, 25, 25}

var colHeaders = []string{"Day", "Focus", "Dur (min)", "Load"}

// Render produces the plan PDF: a header with the plan metadata, one table
// row per session, and the coach message wrapped underneath. The input must
// already be validated; Render imposes no rules of its own.
func Render(p *plan.WeeklyPlan, coachText string) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("no plan to render")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly Training Plan", false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Weekly Training Plan", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Sport: %s | Level: %s", p.Sport, p.Level), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Last week's load (units): %.0f", p.PriorLoad), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Planned load (units): %.0f over %d minutes", p.TotalUnitLoad, p.TotalMinutes()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range colHeaders {
		pdf.CellFormat(colWidths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range p.Sessions {
		pdf.CellFormat(colWidths[0], 6, s.Day, "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, truncate(s.Focus, 52), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, fmt.Sprintf("%d", s.DurationMin), "", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, fmt.Sprintf("%.0f", s.UnitLoad), "", 1, "L", false, 0, "")
	}

	if p.Notice != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, p.Notice, "", "L", false)
	}

	if coachText != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Motivational Coach Message", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, coachText, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering plan PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
