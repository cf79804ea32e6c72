package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ShopFloor/internal/engine"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	OrderID       string  `json:"order"`
	Length        float64 `json:"length_mm"`
	PieceID       string  `json:"piece"`
	RawMaterialID string  `json:"raw_material"`
	Grade         string  `json:"grade,omitempty"`
	PieceIndex    int     `json:"piece_no"` // 1-based position of the piece in the plan
	CutIndex      int     `json:"cut_no"`   // 1-based position of the cut on its piece
	Offset        float64 `json:"offset_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos returns one label per placed cut, in plan order.
func CollectLabelInfos(plan engine.CuttingPlan) []LabelInfo {
	var labels []LabelInfo
	for pieceIdx, e := range plan.Entries {
		offset := 0.0
		for cutIdx, c := range e.Cuts {
			labels = append(labels, LabelInfo{
				OrderID:       c.OrderID,
				Length:        c.Length,
				PieceID:       e.Piece.ID,
				RawMaterialID: e.Piece.RawMaterialID,
				Grade:         e.Piece.Grade,
				PieceIndex:    pieceIdx + 1,
				CutIndex:      cutIdx + 1,
				Offset:        offset,
			})
			offset += c.Length
		}
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per placed cut.
// Each label shows the order, length and source piece, and its QR code
// encodes the label metadata as JSON. Labels are laid out on a standard
// label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, plan engine.CuttingPlan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no cuts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for piece %s cut %d: %w", label.PieceID, label.CutIndex, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.PieceIndex, info.CutIndex)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, orderLabel(info.OrderID), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.0f mm", info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	material := truncate(pdf, fmt.Sprintf("%s %s", info.RawMaterialID, info.Grade), textW)
	pdf.CellFormat(textW, 3, material, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Piece %s cut %d @ %.0f", info.PieceID, info.CutIndex, info.Offset), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits width w.
func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
