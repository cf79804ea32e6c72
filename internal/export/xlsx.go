package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShopFloor/internal/engine"
)

// Workbook sheet names.
const (
	SheetCuts     = "Cuts"
	SheetPieces   = "Pieces"
	SheetShortage = "Shortage"
)

// ExportPlanXLSX writes a cutting plan to a workbook with one row per cut,
// one row per piece, and a shortage sheet when cuts were left unplaced.
func ExportPlanXLSX(path string, plan engine.CuttingPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCuts); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cutRows := [][]interface{}{{"Piece #", "Piece ID", "Raw Material", "Grade", "Cut #", "Order", "Length (mm)", "Offset (mm)"}}
	for _, l := range CollectLabelInfos(plan) {
		cutRows = append(cutRows, []interface{}{l.PieceIndex, l.PieceID, l.RawMaterialID, l.Grade, l.CutIndex, l.OrderID, l.Length, l.Offset})
	}
	if err := writeRows(f, SheetCuts, cutRows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetPieces); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetPieces, err)
	}
	pieceRows := [][]interface{}{{"Piece #", "Piece ID", "Raw Material", "Grade", "Location", "Start (mm)", "Cuts", "Used (mm)", "Remnant (mm)", "Wastage"}}
	for i, e := range plan.Entries {
		pieceRows = append(pieceRows, []interface{}{
			i + 1, e.Piece.ID, e.Piece.RawMaterialID, e.Piece.Grade, e.Piece.Location,
			e.StartLength(), len(e.Cuts), e.CutLength(), e.RemainingLength, e.IsWastage,
		})
	}
	pieceRows = append(pieceRows,
		[]interface{}{},
		[]interface{}{"Total consumed (mm)", plan.TotalConsumed},
		[]interface{}{"Total wastage (mm)", plan.TotalWastage},
		[]interface{}{"Efficiency (%)", plan.Efficiency},
		[]interface{}{"Minimum usable length (mm)", plan.MinimumUsableLength},
	)
	if err := writeRows(f, SheetPieces, pieceRows); err != nil {
		return err
	}

	if len(plan.Unplaced) > 0 {
		if _, err := f.NewSheet(SheetShortage); err != nil {
			return fmt.Errorf("add sheet %s: %w", SheetShortage, err)
		}
		shortRows := [][]interface{}{{"Order", "Length (mm)"}}
		for _, c := range plan.Unplaced {
			shortRows = append(shortRows, []interface{}{c.OrderID, c.Length})
		}
		if err := writeRows(f, SheetShortage, shortRows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeRows writes rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
