// =============================================================================
// EDI Parser - Output Renderers
// =============================================================================
//
// Renders a parsed document, and optionally its validation result, in one of
// the supported output formats:
//
//   text  : indented plain text, one line per segment occurrence
//   color : the text layout styled with the configured color theme
//   json  : tag -> occurrences object, tags in order of first appearance
//   csv   : one row per component (tag, occurrence, element, component, value)
//   xml   : see internal/xmlwriter
//
// =============================================================================

package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
)

// Format is an output format name.
type Format string

// Supported output formats.
const (
	FormatText  Format = "text"
	FormatColor Format = "color"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXML   Format = "xml"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatColor, FormatJSON, FormatCSV, FormatXML}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of text, color, json, csv, xml)", ErrUnknownFormat, name)
}

// Extension returns the file extension used for output files of format f.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatXML:
		return ".xml"
	default:
		return ".txt"
	}
}

// Report is what the renderers consume.
type Report struct {
	// Source names the input, e.g. a file path. Optional.
	Source string

	// Document is the parsed document.
	Document *edi.Document

	// Delimiters are the delimiters the document was parsed with.
	Delimiters edi.Delimiters

	// Validation is nil when no schema was applied.
	Validation *edi.ValidationResult
}

// Render writes report to w in format f. theme is only used by FormatColor.
func Render(w io.Writer, report Report, f Format, theme Theme) error {
	if report.Document == nil {
		report.Document = edi.NewDocument()
	}

	switch f {
	case FormatText:
		return writeText(w, report, plainStyles())
	case FormatColor:
		return writeText(w, report, theme.styles(w))
	case FormatJSON:
		return writeJSON(w, report)
	case FormatCSV:
		return writeCSV(w, report)
	case FormatXML:
		return writeXML(w, report)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}
