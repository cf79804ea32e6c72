package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Stock column roles.
const (
	ColPieceID     Column = "ID"
	ColRawMaterial Column = "RawMaterial"
	ColGrade       Column = "Grade"
	ColShape       Column = "Shape"
	ColLength      Column = "Length"
	ColWeight      Column = "Weight"
	ColCost        Column = "Cost"
	ColLocation    Column = "Location"
	ColMinLength   Column = "MinLength"
)

var stockSchema = schema{
	aliases: map[Column][]string{
		ColPieceID:     {"id", "piece id", "piece", "tag", "heat no", "heat number"},
		ColRawMaterial: {"raw material", "raw material id", "material", "item code", "code", "item"},
		ColGrade:       {"grade", "material grade", "alloy"},
		ColShape:       {"shape", "form", "section", "profile"},
		ColLength:      {"length", "len", "l", "current length", "length (mm)"},
		ColWeight:      {"weight", "wt", "kg", "current weight", "weight (kg)"},
		ColCost:        {"cost", "price", "purchase cost", "value"},
		ColLocation:    {"location", "rack", "bin", "store"},
		ColMinLength:   {"min length", "minimum usable length", "min usable length", "min usable"},
	},
	positional: []Column{ColRawMaterial, ColGrade, ColShape, ColLength, ColWeight, ColCost, ColLocation},
	required:   []Column{ColRawMaterial},
	numericCol: ColLength,
}

// StockResult holds the results of a stock import.
type StockResult struct {
	Pieces   []model.MaterialPiece
	Errors   []string
	Warnings []string
}

// parseShape converts a shape name to a model.Shape.
// It returns the shape and whether the name was recognised; empty is recognised.
func parseShape(s string, weighed bool) (model.Shape, bool) {
	fallback := model.ShapeRod
	if weighed {
		fallback = model.ShapeBlock
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rod", "round", "round bar":
		return model.ShapeRod, true
	case "pipe", "tube":
		return model.ShapePipe, true
	case "bar", "flat", "square", "hex":
		return model.ShapeBar, true
	case "sheet", "plate":
		return model.ShapeSheet, true
	case "block", "billet":
		return model.ShapeBlock, true
	case "":
		return fallback, true
	default:
		return fallback, false
	}
}

// parseStockRow extracts a MaterialPiece from a row.
// Returns the piece, any error message, and any warning messages.
func parseStockRow(row []string, mapping ColumnMapping, rowLabel string) (model.MaterialPiece, string, []string) {
	rawMaterial := getCell(row, mapping.Index(ColRawMaterial))
	if rawMaterial == "" {
		return model.MaterialPiece{}, fmt.Sprintf("%s: Missing raw material", rowLabel), nil
	}

	length, s, ok := parseNumber(row, mapping.Index(ColLength))
	if !ok {
		return model.MaterialPiece{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, s), nil
	}
	weight, s, ok := parseNumber(row, mapping.Index(ColWeight))
	if !ok {
		return model.MaterialPiece{}, fmt.Sprintf("%s: Invalid weight '%s'", rowLabel, s), nil
	}
	if length < 0 || weight < 0 {
		return model.MaterialPiece{}, fmt.Sprintf("%s: Length and weight must not be negative", rowLabel), nil
	}
	if length == 0 && weight == 0 {
		return model.MaterialPiece{}, fmt.Sprintf("%s: Either length or weight is required", rowLabel), nil
	}

	var warnings []string
	shapeStr := getCell(row, mapping.Index(ColShape))
	shape, known := parseShape(shapeStr, length == 0)
	if !known {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown shape '%s', defaulting to %s", rowLabel, shapeStr, shape))
	}

	var piece model.MaterialPiece
	if length > 0 {
		piece = model.NewMaterialPiece(rawMaterial, getCell(row, mapping.Index(ColGrade)), shape, length)
		if weight > 0 {
			piece.CurrentWeight = weight
			piece.OriginalWeight = weight
		}
	} else {
		piece = model.NewWeighedPiece(rawMaterial, getCell(row, mapping.Index(ColGrade)), shape, weight)
	}

	if id := getCell(row, mapping.Index(ColPieceID)); id != "" {
		piece.ID = id
	}
	piece.Location = getCell(row, mapping.Index(ColLocation))

	cost, s, ok := parseNumber(row, mapping.Index(ColCost))
	switch {
	case !ok:
		warnings = append(warnings, fmt.Sprintf("%s: Invalid cost '%s', ignoring", rowLabel, s))
	case cost < 0:
		warnings = append(warnings, fmt.Sprintf("%s: Negative cost ignored", rowLabel))
	default:
		piece.PurchaseCost = cost
	}

	minLength, s, ok := parseNumber(row, mapping.Index(ColMinLength))
	switch {
	case !ok:
		warnings = append(warnings, fmt.Sprintf("%s: Invalid minimum length '%s', using default", rowLabel, s))
	case minLength > 0:
		piece.MinimumUsableLength = minLength
	}

	return piece.Classify(), "", warnings
}

// importStockRows is the shared stock import logic for CSV and Excel data.
func importStockRows(rows [][]string, rowPrefix string, initialWarnings []string) StockResult {
	result := StockResult{Warnings: initialWarnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, start, warnings, err := stockSchema.dataStart(rows)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Warnings = append(result.Warnings, warnings...)

	seen := make(map[string]string)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		piece, errMsg, rowWarnings := parseStockRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if first, dup := seen[piece.ID]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate piece ID '%s' (first seen at %s)", rowLabel, piece.ID, first))
			continue
		}
		seen[piece.ID] = rowLabel
		result.Warnings = append(result.Warnings, rowWarnings...)
		result.Pieces = append(result.Pieces, piece)
	}

	return result
}

// ImportStockCSV imports stock pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportStockCSV(path string) StockResult {
	rows, warnings, err := readCSVFile(path)
	if err != nil {
		return StockResult{Errors: []string{err.Error()}}
	}
	return importStockRows(rows, "Line", warnings)
}

// ImportStockFromReader imports stock pieces from a CSV reader with a known delimiter.
func ImportStockFromReader(reader io.Reader, delimiter rune) StockResult {
	rows, err := readCSV(reader, delimiter)
	if err != nil {
		return StockResult{Errors: []string{err.Error()}}
	}
	return importStockRows(rows, "Line", nil)
}

// ImportStockExcel imports stock pieces from the first sheet of a workbook.
func ImportStockExcel(path string) StockResult {
	rows, err := readExcelFile(path)
	if err != nil {
		return StockResult{Errors: []string{err.Error()}}
	}
	return importStockRows(rows, "Row", nil)
}

// ImportStock picks the CSV or Excel importer from the file extension.
func ImportStock(path string) StockResult {
	if IsExcel(path) {
		return ImportStockExcel(path)
	}
	return ImportStockCSV(path)
}
