// =============================================================================
// EDI Parser - XLSX Schema Templates
// =============================================================================
//
// Business analysts often keep the list of mandatory segments for a trading
// partner in a spreadsheet. This file reads such a template.
//
// EXPECTED LAYOUT (first sheet, header row 1):
//
//   | Segment | Required | Description          |
//   |---------|----------|----------------------|
//   | UNB     | yes      | Interchange header   |
//   | FTX     | no       | Free text            |
//
// Header names are matched case-insensitively, so columns may be reordered.
// Rows with an empty segment cell are skipped.
//
// =============================================================================

package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/xuri/excelize/v2"
)

// TemplateColumns names the header cells of an XLSX or CSV schema template.
type TemplateColumns struct {
	Segment     string
	Required    string
	Description string
}

// DefaultTemplateColumns returns the default header names.
func DefaultTemplateColumns() TemplateColumns {
	return TemplateColumns{
		Segment:     "segment",
		Required:    "required",
		Description: "description",
	}
}

// LoadXLSX reads a schema from the first sheet of an XLSX template.
func LoadXLSX(path string) (*edi.Schema, error) {
	return LoadXLSXWithColumns(path, DefaultTemplateColumns())
}

// LoadXLSXWithColumns reads a schema using custom header names.
func LoadXLSXWithColumns(path string, columns TemplateColumns) (*edi.Schema, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("template file has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("template sheet %s is empty", sheetName)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	schema, err := tableSchema(name, rows, columns)
	if err != nil {
		return nil, fmt.Errorf("template sheet %s: %w", sheetName, err)
	}
	return schema, nil
}

// tableSchema converts template rows, header first, into a schema.
func tableSchema(name string, rows [][]string, columns TemplateColumns) (*edi.Schema, error) {
	index := headerIndex(rows[0])
	segmentCol, ok := index[strings.ToLower(columns.Segment)]
	if !ok {
		return nil, fmt.Errorf("no %q column", columns.Segment)
	}
	requiredCol, ok := index[strings.ToLower(columns.Required)]
	if !ok {
		return nil, fmt.Errorf("no %q column", columns.Required)
	}
	descriptionCol, hasDescription := index[strings.ToLower(columns.Description)]

	schema := &edi.Schema{Name: name}

	for _, row := range rows[1:] {
		tag := cell(row, segmentCol)
		if tag == "" {
			continue
		}

		rule := edi.SegmentRule{
			Tag:      tag,
			Required: isRequired(cell(row, requiredCol)),
		}
		if hasDescription {
			rule.Description = cell(row, descriptionCol)
		}
		schema.Segments = append(schema.Segments, rule)
	}

	return normalize(schema)
}

// headerIndex maps lower-cased header names to their column index.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

// cell returns the trimmed value at col, or "" for short rows.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// isRequired interprets a Required cell. Unrecognized values are optional.
func isRequired(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "required", "req", "r", "yes", "y", "true", "1", "mandatory", "m":
		return true
	default:
		return false
	}
}
