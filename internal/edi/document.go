// =============================================================================
// EDI Parser - Parsed Document
// =============================================================================
//
// A Document maps segment tags to the ordered list of their occurrences:
//
//   UNB -> [ [[UNOC 3] [123456789 14] ...] ]
//   NAD -> [ [[BY] [123456789  16]], [[SU] [987654321  16]] ]
//
// Tags iterate in order of first appearance. Occurrences of a tag keep input
// order. The interleaved order of all occurrences is kept as well so the
// document can be encoded back to text.
//
// =============================================================================

package edi

import (
	"strings"
)

// Element is one data element: an ordered list of one or more components.
type Element []string

// Segment is one segment occurrence: its elements, excluding the tag.
type Segment []Element

// segmentRef points at one occurrence in document order.
type segmentRef struct {
	tag   string
	index int
}

// Document is the structured form of one parsed EDI document.
type Document struct {
	tags     []string
	segments map[string][]Segment
	order    []segmentRef
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		segments: make(map[string][]Segment),
	}
}

// Add appends an occurrence of tag.
func (d *Document) Add(tag string, segment Segment) {
	if d.segments == nil {
		d.segments = make(map[string][]Segment)
	}
	if _, exists := d.segments[tag]; !exists {
		d.tags = append(d.tags, tag)
		d.segments[tag] = []Segment{}
	}
	d.segments[tag] = append(d.segments[tag], segment)
	d.order = append(d.order, segmentRef{tag: tag, index: len(d.segments[tag]) - 1})
}

// Tags returns the distinct segment tags in order of first appearance.
func (d *Document) Tags() []string {
	tags := make([]string, len(d.tags))
	copy(tags, d.tags)
	return tags
}

// Has reports whether at least one segment with tag is present.
func (d *Document) Has(tag string) bool {
	_, ok := d.segments[tag]
	return ok
}

// Occurrences returns the occurrences of tag in input order.
func (d *Document) Occurrences(tag string) []Segment {
	return d.segments[tag]
}

// Len returns the number of distinct tags.
func (d *Document) Len() int {
	return len(d.tags)
}

// SegmentCount returns the total number of segment occurrences.
func (d *Document) SegmentCount() int {
	return len(d.order)
}

// IsEmpty reports whether the document holds no segments.
func (d *Document) IsEmpty() bool {
	return len(d.order) == 0
}

// Walk calls fn for every occurrence in document order, stopping early when
// fn returns false.
func (d *Document) Walk(fn func(tag string, segment Segment) bool) {
	for _, ref := range d.order {
		if !fn(ref.tag, d.segments[ref.tag][ref.index]) {
			return
		}
	}
}

// Encode writes the document back to text in document order using delims.
// Every segment, including the last, is followed by the segment terminator.
func (d *Document) Encode(delims Delimiters) string {
	var b strings.Builder
	d.Walk(func(tag string, segment Segment) bool {
		b.WriteString(tag)
		for _, element := range segment {
			b.WriteRune(delims.Element)
			b.WriteString(strings.Join(element, string(delims.Component)))
		}
		b.WriteRune(delims.Segment)
		return true
	})
	return b.String()
}
