package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShopFloor/internal/depgraph"
	"github.com/piwi3910/ShopFloor/internal/model"
)

// ExportSchedulePDF writes the execution levels of a job-card snapshot with
// the critical path highlighted.
func ExportSchedulePDF(path string, order depgraph.ExecutionOrder, cp depgraph.CriticalPath, opts ReportOptions) error {
	if order.Scheduled() == 0 && len(order.Unscheduled) == 0 {
		return fmt.Errorf("no job cards to export")
	}

	onPath := make(map[string]bool, len(cp.Path))
	for _, c := range cp.Path {
		onPath[cardKey(c)] = true
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	title := opts.Title
	if title == "" {
		title = "Job Card Schedule"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+11)
	stats := fmt.Sprintf("Levels: %d | Scheduled: %d | Critical path: %d card(s), %.0f min",
		len(order.Levels), order.Scheduled(), len(cp.Path), cp.TotalTime)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	colWidths := []float64{20, 45, 45, 60, 35, 30, 32}
	headers := []string{"Level", "Job Card", "Order", "Process", "Status", "Est. (min)", "Critical"}
	y := drawAreaTop
	drawTableHeader(pdf, colWidths, headers, y)
	y += 6

	row := 0
	emit := func(level string, c model.JobCard) {
		if y > pageHeight-marginBottom-12 {
			pdf.AddPage()
			y = marginTop
			drawTableHeader(pdf, colWidths, headers, y)
			y += 6
		}
		pdf.SetFont("Helvetica", "", 9)
		critical := ""
		if onPath[cardKey(c)] {
			critical = "yes"
			pdf.SetFont("Helvetica", "B", 9)
		}
		cells := []string{level, c.Label(), c.OrderID, c.ProcessName, string(c.Status),
			fmt.Sprintf("%.0f", c.EstimatedTotalTimeMin), critical}
		drawTableRow(pdf, colWidths, cells, y, row%2 == 0)
		y += 6
		row++
	}

	for i, level := range order.Levels {
		for _, c := range level {
			emit(fmt.Sprintf("%d", i+1), c)
		}
	}

	if !order.Complete() || cp.Cyclic {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Circular dependency, cards below cannot be scheduled", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8
		for _, c := range order.Unscheduled {
			emit("-", c)
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, opts.footer(), "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// cardKey identifies a card within one snapshot. Cards keyed only by
// JobCardNo have an empty ID.
func cardKey(c model.JobCard) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "no:" + c.JobCardNo
}
