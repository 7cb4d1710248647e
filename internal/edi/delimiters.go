// =============================================================================
// EDI Parser - Delimiter Set
// =============================================================================
//
// An EDIFACT interchange may open with a UNA service string advice that
// declares the service characters used by the rest of the document:
//
//   UNA:+.? '
//   ^^^^^^^^^
//   012345678
//
//   index 3 : component data element separator   (default ':')
//   index 4 : data element separator             (default '+')
//   index 5 : decimal mark                       (default '.')
//   index 6 : release character                  (default '?')
//   index 7 : reserved, normally a space
//   index 8 : segment terminator                 (default "'")
//
// The release character is recorded but never applied by the tokenizer.
//
// =============================================================================

package edi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// UNATag is the tag of the optional service string advice header.
const UNATag = "UNA"

// unaLength is the length of a complete UNA header in characters.
const unaLength = 9

// ErrMalformedHeader is returned when a document starts with UNA but the
// header is too short or declares unusable delimiters.
var ErrMalformedHeader = errors.New("malformed UNA header")

// Delimiters is the set of service characters active for one document.
type Delimiters struct {
	// Component separates components within an element.
	Component rune

	// Element separates data elements within a segment.
	Element rune

	// Decimal is the decimal mark. Not used by parsing.
	Decimal rune

	// Release is the release (escape) character. Not used by parsing.
	Release rune

	// Segment terminates a segment.
	Segment rune
}

// DefaultDelimiters returns the EDIFACT default service characters.
func DefaultDelimiters() Delimiters {
	return Delimiters{
		Component: ':',
		Element:   '+',
		Decimal:   '.',
		Release:   '?',
		Segment:   '\'',
	}
}

// Validate checks that the three structural delimiters are distinct.
func (d Delimiters) Validate() error {
	if d.Segment == d.Element || d.Segment == d.Component || d.Element == d.Component {
		return fmt.Errorf("%w: segment %q, element %q and component %q separators must be distinct",
			ErrMalformedHeader, d.Segment, d.Element, d.Component)
	}
	return nil
}

// UNA renders the delimiter set as a UNA header.
func (d Delimiters) UNA() string {
	return UNATag + string([]rune{d.Component, d.Element, d.Decimal, d.Release, ' ', d.Segment})
}

// ExtractDelimiters reads the delimiter set from the start of raw and returns
// it together with the document body that follows the header.
//
// Leading whitespace is ignored when looking for the header. Without a UNA
// header the defaults are returned and the body is raw itself. With a header
// the 9 header characters are removed and the rest is trimmed.
func ExtractDelimiters(raw string) (Delimiters, string, error) {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, UNATag) {
		return DefaultDelimiters(), raw, nil
	}

	header := []rune(trimmed)
	if len(header) < unaLength {
		return Delimiters{}, "", fmt.Errorf("%w: expected %d characters, got %d",
			ErrMalformedHeader, unaLength, len(header))
	}

	delims := Delimiters{
		Component: header[3],
		Element:   header[4],
		Decimal:   header[5],
		Release:   header[6],
		Segment:   header[8],
	}
	if err := delims.Validate(); err != nil {
		return Delimiters{}, "", err
	}

	body := strings.TrimSpace(string(header[unaLength:]))
	return delims, body, nil
}
