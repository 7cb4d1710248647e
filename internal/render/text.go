package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
)

// textStyles decorates the pieces of the text layout.
type textStyles struct {
	heading func(string) string
	tag     func(string) string
	segment func(string) string
	valid   func(string) string
	invalid func(string) string
	missing func(string) string
}

func plainStyles() textStyles {
	identity := func(s string) string { return s }
	return textStyles{
		heading: identity,
		tag:     identity,
		segment: identity,
		valid:   identity,
		invalid: identity,
		missing: identity,
	}
}

// writeText writes:
//
//	Parsed EDI Document:
//	NAD:
//	  ["BY"] ["123456789" "" "16"]
//
//	Missing required segment: UNZ
//	EDI document is invalid.
func writeText(w io.Writer, report Report, styles textStyles) error {
	bw := bufio.NewWriter(w)

	heading := "Parsed EDI Document:"
	if report.Source != "" {
		heading = fmt.Sprintf("Parsed EDI Document (%s):", report.Source)
	}
	fmt.Fprintln(bw, styles.heading(heading))

	if report.Document.IsEmpty() {
		fmt.Fprintln(bw, "  (no segments)")
	}

	for _, tag := range report.Document.Tags() {
		fmt.Fprintln(bw, styles.tag(tag+":"))
		for _, segment := range report.Document.Occurrences(tag) {
			fmt.Fprintln(bw, styles.segment("  "+FormatSegment(segment)))
		}
	}

	if v := report.Validation; v != nil {
		fmt.Fprintln(bw)
		for _, err := range v.Errors {
			fmt.Fprintln(bw, styles.missing(err.Message))
		}
		if v.IsValid {
			fmt.Fprintln(bw, styles.valid("EDI document is valid."))
		} else {
			fmt.Fprintln(bw, styles.invalid("EDI document is invalid."))
		}
	}

	return bw.Flush()
}

// FormatSegment renders the elements of one occurrence, each as a quoted
// component list.
func FormatSegment(segment edi.Segment) string {
	parts := make([]string, len(segment))
	for i, element := range segment {
		parts[i] = fmt.Sprintf("%q", []string(element))
	}
	return strings.Join(parts, " ")
}
