package importer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Requirement column roles. Length is shared with stock.
const (
	ColOrder    Column = "Order"
	ColQuantity Column = "Quantity"
)

var requirementSchema = schema{
	aliases: map[Column][]string{
		ColOrder:    {"order", "order id", "order no", "sales order", "so", "work order", "wo"},
		ColLength:   {"length", "len", "l", "required length", "cut length", "length (mm)"},
		ColQuantity: {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	},
	positional: []Column{ColOrder, ColLength, ColQuantity},
	required:   []Column{ColLength, ColQuantity},
	numericCol: ColLength,
}

// RequirementResult holds the results of a cutting-requirement import.
type RequirementResult struct {
	Requirements []model.CuttingRequirement
	Errors       []string
	Warnings     []string
}

// parseRequirementRow extracts a CuttingRequirement from a row.
// Returns the requirement, any error message, and any warning message.
func parseRequirementRow(row []string, mapping ColumnMapping, rowLabel string) (model.CuttingRequirement, string, string) {
	lengthStr := getCell(row, mapping.Index(ColLength))
	if lengthStr == "" {
		return model.CuttingRequirement{}, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return model.CuttingRequirement{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	qtyStr := getCell(row, mapping.Index(ColQuantity))
	if qtyStr == "" {
		return model.CuttingRequirement{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.CuttingRequirement{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || qty <= 0 {
		return model.CuttingRequirement{}, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel), ""
	}

	var warning string
	order := getCell(row, mapping.Index(ColOrder))
	if order == "" {
		warning = fmt.Sprintf("%s: No order reference", rowLabel)
	}

	return model.CuttingRequirement{RequiredLength: length, Quantity: qty, OrderID: order}, "", warning
}

// importRequirementRows is the shared requirement import logic for CSV and Excel data.
func importRequirementRows(rows [][]string, rowPrefix string, initialWarnings []string) RequirementResult {
	result := RequirementResult{Warnings: initialWarnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, start, warnings, err := requirementSchema.dataStart(rows)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Warnings = append(result.Warnings, warnings...)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		req, errMsg, warning := parseRequirementRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Requirements = append(result.Requirements, req)
	}

	return result
}

// ImportRequirementsCSV imports cutting requirements from a CSV file.
func ImportRequirementsCSV(path string) RequirementResult {
	rows, warnings, err := readCSVFile(path)
	if err != nil {
		return RequirementResult{Errors: []string{err.Error()}}
	}
	return importRequirementRows(rows, "Line", warnings)
}

// ImportRequirementsFromReader imports requirements from a CSV reader with a known delimiter.
func ImportRequirementsFromReader(reader io.Reader, delimiter rune) RequirementResult {
	rows, err := readCSV(reader, delimiter)
	if err != nil {
		return RequirementResult{Errors: []string{err.Error()}}
	}
	return importRequirementRows(rows, "Line", nil)
}

// ImportRequirementsExcel imports requirements from the first sheet of a workbook.
func ImportRequirementsExcel(path string) RequirementResult {
	rows, err := readExcelFile(path)
	if err != nil {
		return RequirementResult{Errors: []string{err.Error()}}
	}
	return importRequirementRows(rows, "Row", nil)
}

// ImportRequirements picks the CSV or Excel importer from the file extension.
func ImportRequirements(path string) RequirementResult {
	if IsExcel(path) {
		return ImportRequirementsExcel(path)
	}
	return ImportRequirementsCSV(path)
}
