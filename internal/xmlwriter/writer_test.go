package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/known"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKnown(t *testing.T) {
	standards := []known.Standard{{
		Name: "VDA (German Automotive Standard)",
		Documents: []known.Document{
			{Code: "4905", Description: "Delivery Schedule"},
			{Code: "4913", Description: "Invoice & Billing"},
		},
	}}

	out, err := GenerateKnown(standards)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<EDI_Documents>
  <Standard name="VDA (German Automotive Standard)">
    <Document code="4905">Delivery Schedule</Document>
    <Document code="4913">Invoice &amp; Billing</Document>
  </Standard>
</EDI_Documents>
`
	assert.Equal(t, want, string(out))
}

func TestGenerateKnown_AllStandardsWellFormed(t *testing.T) {
	out, err := GenerateKnown(known.Standards())
	require.NoError(t, err)

	var parsed struct {
		Standards []struct {
			Name      string `xml:"name,attr"`
			Documents []struct {
				Code     string `xml:"code,attr"`
				Industry string `xml:"industry,attr"`
				Text     string `xml:",chardata"`
			} `xml:"Document"`
		} `xml:"Standard"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))
	require.Len(t, parsed.Standards, len(known.Standards()))
	assert.Equal(t, known.ANSIX12, parsed.Standards[0].Name)

	industry := parsed.Standards[len(parsed.Standards)-1]
	assert.Equal(t, "210", industry.Documents[0].Code)
	assert.Equal(t, "Transportation & Logistics", industry.Documents[0].Industry)
}

func TestGenerateSearchResult(t *testing.T) {
	match, err := known.Search("850")
	require.NoError(t, err)

	out, err := GenerateSearchResult(match)
	require.NoError(t, err)

	assert.Contains(t, string(out), `<Search_Result>`)
	assert.Contains(t, string(out), `<Document code="850" standard="ANSI X12 (North American Standard)">Purchase Order (PO)`)
}

func TestGenerateError(t *testing.T) {
	out := GenerateError("EDI code <X> not found.")
	assert.Equal(t, "<Error>EDI code &lt;X&gt; not found.</Error>\n", string(out))
}

func TestGenerateDocument(t *testing.T) {
	doc, err := edi.Parse("NAD+BY+1::16'NAD+SU'")
	require.NoError(t, err)

	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = false
	options.RootAttributes["valid"] = "true"

	out, err := GenerateDocumentWithOptions(doc, options)
	require.NoError(t, err)

	want := `<EDI_Document valid="true">
  <Segment tag="NAD">
    <Occurrence n="1">
      <Element n="1">
        <Component n="1">BY</Component>
      </Element>
      <Element n="2">
        <Component n="1">1</Component>
        <Component n="2"/>
        <Component n="3">16</Component>
      </Element>
    </Occurrence>
    <Occurrence n="2">
      <Element n="1">
        <Component n="1">SU</Component>
      </Element>
    </Occurrence>
  </Segment>
</EDI_Document>
`
	assert.Equal(t, want, string(out))
}

func TestGenerateDocument_Empty(t *testing.T) {
	out, err := GenerateDocument(edi.NewDocument())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out), "<EDI_Document/>\n"))

	_, err = GenerateDocument(nil)
	assert.Error(t, err)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a&amp;b&lt;c&gt;&#34;d&#39;", escapeXML(`a&b<c>"d'`))
	assert.Equal(t, "ctl\uFFFDx", escapeXML("ctl\x01x"))
}

func TestGenerateDocument_ControlCharacters(t *testing.T) {
	doc, err := edi.Parse("FTX+AAI+bad\x01text'")
	require.NoError(t, err)

	out, err := GenerateDocument(doc)
	require.NoError(t, err)

	// The output must be well-formed XML.
	decoder := xml.NewDecoder(bytes.NewReader(out))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Contains(t, string(out), "bad\uFFFDtext")
}
