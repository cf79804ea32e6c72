// Package export provides functionality for exporting cutting plans and job
// schedules to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShopFloor/internal/engine"
)

// cutColor represents an RGB color for a cut segment.
type cutColor struct {
	R, G, B int
}

// cutColors cycles across the cuts of a piece.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	barHeight    = 10.0
	barSpacing   = 18.0 // vertical pitch between piece bars including captions
	barsPerPage  = 8
	barCaptionDY = 11.0
)

// ReportOptions controls headings and footers of generated reports.
type ReportOptions struct {
	Title       string
	CompanyName string
}

func (o ReportOptions) title() string {
	if o.Title != "" {
		return o.Title
	}
	return "Cutting Plan"
}

func (o ReportOptions) footer() string {
	if o.CompanyName != "" {
		return "Generated by ShopFloor for " + o.CompanyName
	}
	return "Generated by ShopFloor"
}

// ExportPlanPDF generates a PDF document for a cutting plan. Pieces are drawn
// as scaled bars, several to a page, followed by a summary page.
func ExportPlanPDF(path string, plan engine.CuttingPlan, opts ReportOptions) error {
	if len(plan.Entries) == 0 && len(plan.Unplaced) == 0 {
		return fmt.Errorf("no cuts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	// The longest piece sets a common scale so bars are comparable
	longest := 0.0
	for _, e := range plan.Entries {
		longest = math.Max(longest, e.StartLength())
	}
	scale := 0.0
	if longest > 0 {
		scale = (pageWidth - marginLeft - marginRight) / longest
	}

	for start := 0; start < len(plan.Entries); start += barsPerPage {
		end := start + barsPerPage
		if end > len(plan.Entries) {
			end = len(plan.Entries)
		}
		pdf.AddPage()
		renderPiecesPage(pdf, plan.Entries[start:end], start, scale, opts)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, opts)

	return pdf.OutputFileAndClose(path)
}

// renderPiecesPage draws up to barsPerPage piece bars on the current page.
func renderPiecesPage(pdf *fpdf.Fpdf, entries []engine.PlanEntry, offset int, scale float64, opts ReportOptions) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: pieces %d-%d", opts.title(), offset+1, offset+len(entries))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	for i, e := range entries {
		y := drawAreaTop + float64(i)*barSpacing
		drawPieceBar(pdf, e, offset+i+1, scale, y)
	}
}

// drawPieceBar renders one piece: cut segments in sequence, then the remnant.
func drawPieceBar(pdf *fpdf.Fpdf, e engine.PlanEntry, pieceNum int, scale, y float64) {
	x := marginLeft
	barW := e.StartLength() * scale

	// Stock background
	pdf.SetFillColor(220, 220, 220)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x, y, barW, barHeight, "FD")

	for i, c := range e.Cuts {
		w := c.Length * scale
		col := cutColors[i%len(cutColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, w, barHeight, "FD")

		label := fmt.Sprintf("%.0f", c.Length)
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		pdf.SetTextColor(0, 0, 0)
		if lw := pdf.GetStringWidth(label); lw < w-1 {
			pdf.SetXY(x+(w-lw)/2, y+barHeight/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
		x += w
	}

	if e.RemainingLength > 0 {
		w := e.RemainingLength * scale
		if e.IsWastage {
			pdf.SetFillColor(255, 200, 200)
			pdf.SetDrawColor(200, 0, 0)
			pdf.Rect(x, y, w, barHeight, "FD")
			drawHatchPattern(pdf, x, y, w, barHeight)
		} else {
			pdf.SetFillColor(200, 235, 200)
			pdf.SetDrawColor(0, 120, 0)
			pdf.Rect(x, y, w, barHeight, "FD")
		}
	}

	// Caption below the bar
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(marginLeft, y+barCaptionDY)
	caption := fmt.Sprintf("#%d  %s  %s %s  %.0f mm  |  %d cut(s), %.0f mm used  |  remnant %.0f mm %s",
		pieceNum, e.Piece.ID, e.Piece.RawMaterialID, e.Piece.Grade, e.StartLength(),
		len(e.Cuts), e.CutLength(), e.RemainingLength, remnantTag(e))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, caption, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func remnantTag(e engine.PlanEntry) string {
	switch {
	case e.RemainingLength == 0:
		return "(consumed)"
	case e.IsWastage:
		return "(SCRAP)"
	default:
		return "(back to stock)"
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark scrap.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan engine.CuttingPlan, opts ReportOptions) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, opts.title()+" Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Pieces Used", fmt.Sprintf("%d", len(plan.Entries))},
		{"Cuts Placed", fmt.Sprintf("%d of %d", plan.PlacedCuts(), plan.RequestedCuts())},
		{"Material Consumed", fmt.Sprintf("%.0f mm", plan.TotalConsumed)},
		{"Wastage", fmt.Sprintf("%.0f mm", plan.TotalWastage)},
		{"Efficiency", fmt.Sprintf("%.1f%%", plan.Efficiency)},
		{"Minimum Usable Length", fmt.Sprintf("%.0f mm", plan.MinimumUsableLength)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Piece Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 35, 45, 30, 20, 35, 35, 52}
	headers := []string{"#", "Piece", "Material", "Start", "Cuts", "Used", "Remnant", "Remnant Status"}
	drawTableHeader(pdf, colWidths, headers, y)
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range plan.Entries {
		if y > pageHeight-marginBottom-12 {
			pdf.AddPage()
			y = marginTop
			drawTableHeader(pdf, colWidths, headers, y)
			y += 6
			pdf.SetFont("Helvetica", "", 9)
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			e.Piece.ID,
			e.Piece.RawMaterialID,
			fmt.Sprintf("%.0f mm", e.StartLength()),
			fmt.Sprintf("%d", len(e.Cuts)),
			fmt.Sprintf("%.0f mm", e.CutLength()),
			fmt.Sprintf("%.0f mm", e.RemainingLength),
			remnantTag(e),
		}
		drawTableRow(pdf, colWidths, rowData, y, i%2 == 0)
		y += 6
	}

	if len(plan.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Stock shortage, cuts not placed", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range plan.Unplaced {
			if y > pageHeight-marginBottom-8 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %.0f mm for order %s", c.Length, orderLabel(c.OrderID)), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, opts.footer(), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawTableHeader(pdf *fpdf.Fpdf, colWidths []float64, headers []string, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
}

func drawTableRow(pdf *fpdf.Fpdf, colWidths []float64, cells []string, y float64, shaded bool) {
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
}

func orderLabel(orderID string) string {
	if orderID == "" {
		return "(none)"
	}
	return orderID
}

// labelFontSize returns a font size that fits a segment of width w.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
