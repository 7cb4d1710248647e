// =============================================================================
// EDI Parser - CSV Schema Templates
// =============================================================================
//
// Reads the same template layout as xlsx.go from a delimited text export:
//
//   Segment,Required,Description
//   UNB,yes,Interchange header
//   FTX,no,Free text
//
// The delimiter is chosen by file extension (.tsv is tab separated) or set
// explicitly with LoadCSVWithSettings. Quoting follows encoding/csv with
// lazy quotes, and rows may have fewer cells than the header.
//
// =============================================================================

package schema

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
)

// CSVSettings controls how a CSV template is read.
type CSVSettings struct {
	// Delimiter is a single character or one of the names tab, pipe,
	// semicolon. Empty means comma.
	Delimiter string

	// Columns names the header cells.
	Columns TemplateColumns
}

// DefaultCSVSettings returns comma separated settings with the default
// header names.
func DefaultCSVSettings() CSVSettings {
	return CSVSettings{
		Delimiter: ",",
		Columns:   DefaultTemplateColumns(),
	}
}

// LoadCSV reads a schema from a CSV or TSV template.
func LoadCSV(path string) (*edi.Schema, error) {
	settings := DefaultCSVSettings()
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		settings.Delimiter = "tab"
	}
	return LoadCSVWithSettings(path, settings)
}

// LoadCSVWithSettings reads a schema from a delimited template.
func LoadCSVWithSettings(path string, settings CSVSettings) (*edi.Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	if err := configureReader(reader, settings.Delimiter); err != nil {
		return nil, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("template file %s is empty", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	schema, err := tableSchema(name, rows, settings.Columns)
	if err != nil {
		return nil, fmt.Errorf("template file %s: %w", path, err)
	}
	return schema, nil
}

// configureReader applies the delimiter and the lenient parsing options
// templates exported from spreadsheets need.
func configureReader(reader *csv.Reader, delimiter string) error {
	switch strings.ToLower(delimiter) {
	case "", ",", "comma":
		reader.Comma = ','
	case "\\t", "\t", "tab":
		reader.Comma = '\t'
	case "|", "pipe":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return fmt.Errorf("invalid CSV delimiter %q", delimiter)
		}
		reader.Comma = runes[0]
	}

	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	// Leading-space trimming would swallow empty fields of tab separated files.
	reader.TrimLeadingSpace = !unicode.IsSpace(reader.Comma)
	reader.Comment = '#'

	return nil
}
