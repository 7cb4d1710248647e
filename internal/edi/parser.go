// =============================================================================
// EDI Parser - Tokenizer
// =============================================================================
//
// Turns a raw EDI/EDIFACT document into a Document.
//
// PIPELINE:
//   1. Extract the delimiter set from an optional UNA header
//   2. Split the body on the segment terminator
//   3. Trim each chunk, skip empty ones (trailing terminators, line breaks)
//   4. Split the chunk on the element separator, the first field is the tag
//   5. Split each element on the component separator
//   6. Append the occurrence under its tag
//
// Values inside elements and components are never trimmed.
//
// =============================================================================

package edi

import (
	"strings"
)

// Parser tokenizes documents. The zero value is ready to use. A Parser
// remembers the delimiters of the last document it parsed and must not be
// shared between goroutines; Parse itself is safe for concurrent use.
type Parser struct {
	delims Delimiters
}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{delims: DefaultDelimiters()}
}

// Delimiters returns the delimiter set of the last parsed document.
func (p *Parser) Delimiters() Delimiters {
	if p.delims == (Delimiters{}) {
		return DefaultDelimiters()
	}
	return p.delims
}

// Parse tokenizes raw into a Document.
func (p *Parser) Parse(raw string) (*Document, error) {
	delims, body, err := ExtractDelimiters(raw)
	if err != nil {
		return nil, err
	}
	p.delims = delims

	return tokenize(body, delims), nil
}

// Parse tokenizes raw into a Document.
func Parse(raw string) (*Document, error) {
	return NewParser().Parse(raw)
}

// tokenize splits body into segments, elements and components.
func tokenize(body string, delims Delimiters) *Document {
	doc := NewDocument()

	segmentSep := string(delims.Segment)
	elementSep := string(delims.Element)
	componentSep := string(delims.Component)

	for _, chunk := range strings.Split(body, segmentSep) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		fields := strings.Split(chunk, elementSep)
		tag := fields[0]

		segment := make(Segment, 0, len(fields)-1)
		for _, field := range fields[1:] {
			segment = append(segment, Element(strings.Split(field, componentSep)))
		}

		doc.Add(tag, segment)
	}

	return doc
}
