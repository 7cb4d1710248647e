package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
)

// csvHeader is the first row of CSV output. Indexes are 1-based.
var csvHeader = []string{"tag", "occurrence", "element", "component", "value"}

// writeCSV flattens the document to one row per component, in document order.
// Segments without elements produce a single row with empty indexes.
func writeCSV(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	seen := make(map[string]int)
	var writeErr error

	report.Document.Walk(func(tag string, segment edi.Segment) bool {
		seen[tag]++
		occurrence := strconv.Itoa(seen[tag])

		if len(segment) == 0 {
			writeErr = writer.Write([]string{tag, occurrence, "", "", ""})
			return writeErr == nil
		}

		for i, element := range segment {
			for j, component := range element {
				row := []string{tag, occurrence, strconv.Itoa(i + 1), strconv.Itoa(j + 1), component}
				if writeErr = writer.Write(row); writeErr != nil {
					return false
				}
			}
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	writer.Flush()
	return writer.Error()
}
