// Package importer reads stock pieces and cutting requirements from CSV and
// Excel files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition. Row problems are collected
// as Errors and Warnings instead of aborting the import.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column is a semantic column role.
type Column string

// ColumnMapping maps column roles to their indices in the data. Roles that
// are absent from the header are not present in the map.
type ColumnMapping map[Column]int

// Index returns the column index for role, or -1 when it is not mapped.
func (m ColumnMapping) Index(role Column) int {
	if i, ok := m[role]; ok {
		return i
	}
	return -1
}

// schema describes one importable record layout.
type schema struct {
	aliases    map[Column][]string // accepted header names, all lowercase
	positional []Column            // column order when the file has no header
	required   []Column            // roles that must be mapped in a header
	numericCol Column              // positional column expected to be numeric in data rows
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// detectColumns examines a header row and returns a ColumnMapping.
// It returns the positional mapping and false when no cell matches an alias.
func (s schema) detectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range s.aliases {
			if _, seen := mapping[role]; seen {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					mapping[role] = i
					break
				}
			}
		}
	}

	if len(mapping) == 0 {
		positional := ColumnMapping{}
		for i, role := range s.positional {
			positional[role] = i
		}
		return positional, false
	}
	return mapping, true
}

// missingColumns lists the required roles absent from a header mapping.
func (s schema) missingColumns(mapping ColumnMapping) []string {
	var missing []string
	for _, role := range s.required {
		if mapping.Index(role) == -1 {
			missing = append(missing, string(role))
		}
	}
	return missing
}

// dataStart returns the column mapping, the index of the first data row and
// any warnings about the header. A header lacking required columns is an error.
func (s schema) dataStart(rows [][]string) (ColumnMapping, int, []string, error) {
	mapping, hasHeader := s.detectColumns(rows[0])
	if hasHeader {
		if missing := s.missingColumns(mapping); len(missing) > 0 {
			return nil, 0, nil, fmt.Errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
		}
		return mapping, 1, []string{"Detected header row, skipping"}, nil
	}

	// An unrecognised header still has a non-numeric cell where a number belongs
	if v := getCell(rows[0], mapping.Index(s.numericCol)); v != "" {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return mapping, 1, []string{"Detected header row, skipping"}, nil
		}
	}
	return mapping, 0, nil, nil
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses an optional numeric cell. Empty cells yield 0 and ok.
func parseNumber(row []string, idx int) (float64, string, bool) {
	s := getCell(row, idx)
	if s == "" {
		return 0, s, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, s, false
	}
	return v, s, true
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// readCSVFile loads all records from a CSV file with a detected delimiter.
func readCSVFile(path string) ([][]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, fmt.Errorf("File is empty")
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return nil, nil, err
	}
	return records, warnings, nil
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("File is empty")
	}
	return records, nil
}

// readExcelFile reads the rows of the first sheet of a workbook.
func readExcelFile(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Sheet is empty")
	}
	return rows, nil
}

// IsExcel reports whether path has a spreadsheet extension.
func IsExcel(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return true
	default:
		return false
	}
}
