package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	json "github.com/goccy/go-json"
)

type jsonDelimiters struct {
	Segment   string `json:"segment"`
	Element   string `json:"element"`
	Component string `json:"component"`
	Decimal   string `json:"decimal"`
	Release   string `json:"release"`
}

type jsonValidation struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
	Errors  []string `json:"errors"`
}

// jsonReport is encoded field by field so the segments object keeps tag
// order; encoding a Go map would sort the keys.
type jsonReport struct {
	Source     string          `json:"source,omitempty"`
	Delimiters jsonDelimiters  `json:"delimiters"`
	Segments   orderedSegments `json:"segments"`
	Validation *jsonValidation `json:"validation,omitempty"`
}

// orderedSegments encodes a document as a JSON object whose keys follow tag
// order of first appearance.
type orderedSegments struct {
	doc *edi.Document
}

// MarshalJSON implements json.Marshaler.
func (o orderedSegments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, tag := range o.doc.Tags() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(tag)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.doc.Occurrences(tag))
		if err != nil {
			return nil, fmt.Errorf("failed to encode segment %s: %w", tag, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(w io.Writer, report Report) error {
	d := report.Delimiters
	if d == (edi.Delimiters{}) {
		d = edi.DefaultDelimiters()
	}

	out := jsonReport{
		Source: report.Source,
		Delimiters: jsonDelimiters{
			Segment:   string(d.Segment),
			Element:   string(d.Element),
			Component: string(d.Component),
			Decimal:   string(d.Decimal),
			Release:   string(d.Release),
		},
		Segments: orderedSegments{doc: report.Document},
	}

	if v := report.Validation; v != nil {
		jv := &jsonValidation{
			Valid:   v.IsValid,
			Missing: append([]string{}, v.Missing...),
			Errors:  make([]string, 0, len(v.Errors)),
		}
		for _, err := range v.Errors {
			jv.Errors = append(jv.Errors, err.Error())
		}
		out.Validation = jv
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
