// =============================================================================
// EDI Parser - XML Writer Module
// =============================================================================
//
// This module renders reference tables, code search results and parsed EDI
// documents as indented XML.
//
// XML STRUCTURE:
//
//   Reference tables:
//
//   <EDI_Documents>
//     <Standard name="ANSI X12 (North American Standard)">
//       <Document code="850">Purchase Order (PO) - ...</Document>
//     </Standard>
//   </EDI_Documents>
//
//   Search result:
//
//   <Search_Result>
//     <Document code="850" standard="ANSI X12 (North American Standard)">...</Document>
//   </Search_Result>
//
//   Parsed document (grouped by tag, in order of first appearance):
//
//   <EDI_Document>
//     <Segment tag="NAD">
//       <Occurrence n="1">
//         <Element n="1">
//           <Component n="1">BY</Component>
//         </Element>
//       </Occurrence>
//     </Segment>
//   </EDI_Document>
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/known"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootAttributes are additional attributes for the root element, written
	// in key order.
	RootAttributes map[string]string

	// IndexAttribute is the attribute name for occurrence, element and
	// component indexes.
	// Default: "n"
	IndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootAttributes:        make(map[string]string),
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr   `xml:",attr"`
	Value      string       `xml:",chardata"`
	Children   []XMLElement `xml:",any"`
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// GenerateKnown renders reference tables, numeric codes first.
func GenerateKnown(standards []known.Standard) ([]byte, error) {
	return GenerateKnownWithOptions(standards, DefaultGenerateOptions())
}

// GenerateKnownWithOptions renders reference tables with custom options.
func GenerateKnownWithOptions(standards []known.Standard, options GenerateOptions) ([]byte, error) {
	root := XMLElement{XMLName: xml.Name{Local: "EDI_Documents"}}

	for _, standard := range standards {
		standardElement := XMLElement{
			XMLName:    xml.Name{Local: "Standard"},
			Attributes: []xml.Attr{attr("name", standard.Name)},
		}
		for _, doc := range known.SortedDocuments(standard) {
			standardElement.Children = append(standardElement.Children, documentElement(doc, ""))
		}
		root.Children = append(root.Children, standardElement)
	}

	return render(root, options)
}

// GenerateSearchResult renders a single code search match.
func GenerateSearchResult(match known.Match) ([]byte, error) {
	root := XMLElement{
		XMLName:  xml.Name{Local: "Search_Result"},
		Children: []XMLElement{documentElement(match.Document, match.Standard)},
	}
	return render(root, DefaultGenerateOptions())
}

// GenerateError renders an error message as an <Error> element without an
// XML declaration.
func GenerateError(message string) []byte {
	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = false

	var buffer bytes.Buffer
	writeElement(&buffer, createSimpleElement("Error", message), options.Indent, 0)
	return buffer.Bytes()
}

// GenerateDocument renders a parsed EDI document.
func GenerateDocument(doc *edi.Document) ([]byte, error) {
	return GenerateDocumentWithOptions(doc, DefaultGenerateOptions())
}

// GenerateDocumentWithOptions renders a parsed EDI document with custom
// options.
func GenerateDocumentWithOptions(doc *edi.Document, options GenerateOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	root := XMLElement{XMLName: xml.Name{Local: "EDI_Document"}}

	for _, tag := range doc.Tags() {
		segmentElement := XMLElement{
			XMLName:    xml.Name{Local: "Segment"},
			Attributes: []xml.Attr{attr("tag", tag)},
		}

		for i, occurrence := range doc.Occurrences(tag) {
			segmentElement.Children = append(segmentElement.Children,
				buildOccurrenceElement(occurrence, i+1, options))
		}

		root.Children = append(root.Children, segmentElement)
	}

	return render(root, options)
}

// buildOccurrenceElement constructs one occurrence with its elements and
// components.
func buildOccurrenceElement(segment edi.Segment, index int, options GenerateOptions) XMLElement {
	occurrence := XMLElement{
		XMLName:    xml.Name{Local: "Occurrence"},
		Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(index))},
	}

	for i, element := range segment {
		elementNode := XMLElement{
			XMLName:    xml.Name{Local: "Element"},
			Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(i+1))},
		}
		for j, component := range element {
			componentNode := createSimpleElement("Component", component)
			componentNode.Attributes = []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(j+1))}
			elementNode.Children = append(elementNode.Children, componentNode)
		}
		occurrence.Children = append(occurrence.Children, elementNode)
	}

	return occurrence
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// documentElement builds a <Document> element for a reference table entry.
// The standard attribute is only written when standard is non-empty.
func documentElement(doc known.Document, standard string) XMLElement {
	element := createSimpleElement("Document", doc.Description)
	element.Attributes = []xml.Attr{attr("code", doc.Code)}
	if standard != "" {
		element.Attributes = append(element.Attributes, attr("standard", standard))
	}
	if doc.Industry != "" {
		element.Attributes = append(element.Attributes, attr("industry", doc.Industry))
	}
	return element
}

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// render writes the optional declaration and the indented root element.
func render(root XMLElement, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		root.Attributes = append(root.Attributes, attr(key, options.RootAttributes[key]))
	}

	writeElement(&buffer, root, options.Indent, 0)
	return buffer.Bytes(), nil
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes s for use in text and attribute values. Runes XML 1.0
// does not allow, such as most control characters, become U+FFFD.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
