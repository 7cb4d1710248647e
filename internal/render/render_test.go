package render

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newReport(t *testing.T, raw string, schema *edi.Schema) Report {
	t.Helper()

	p := edi.NewParser()
	doc, err := p.Parse(raw)
	require.NoError(t, err)

	report := Report{Document: doc, Delimiters: p.Delimiters()}
	if schema != nil {
		report.Validation = edi.NewValidator(schema).ValidateAll(doc)
	}
	return report
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "COLOR", " json ", "csv", "xml"} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseFormat("yaml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".csv", FormatCSV.Extension())
	assert.Equal(t, ".xml", FormatXML.Extension())
	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".txt", FormatColor.Extension())
}

func TestRender_Text(t *testing.T) {
	report := newReport(t, "UNB+UNOC:3'NAD+BY+1::16'NAD+SU'", edi.NewSchema(map[string]bool{"UNB": true, "UNZ": true}))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatText, DefaultTheme()))

	want := `Parsed EDI Document:
UNB:
  ["UNOC" "3"]
NAD:
  ["BY"] ["1" "" "16"]
  ["SU"]

Missing required segment: UNZ
EDI document is invalid.
`
	assert.Equal(t, want, buf.String())
}

func TestRender_TextEmpty(t *testing.T) {
	report := newReport(t, "", &edi.Schema{})
	report.Source = "empty.edi"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatText, DefaultTheme()))

	assert.Contains(t, buf.String(), "Parsed EDI Document (empty.edi):")
	assert.Contains(t, buf.String(), "(no segments)")
	assert.Contains(t, buf.String(), "EDI document is valid.")
}

func TestRender_Color(t *testing.T) {
	report := newReport(t, "UNB+UNOC:3'", edi.NewSchema(map[string]bool{"UNB": true}))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatColor, Theme{Highlight: "#FFFFFF"}))

	assert.Contains(t, buf.String(), "UNB:")
	assert.Contains(t, buf.String(), `["UNOC" "3"]`)
	assert.Contains(t, buf.String(), "EDI document is valid.")
}

func TestRender_JSON(t *testing.T) {
	report := newReport(t, "UNA:+.? 'UNB+UNOC:3'BGM+220'UNB+X'", edi.NewSchema(map[string]bool{"UNB": true, "UNZ": true}))
	report.Source = "orders.edi"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatJSON, DefaultTheme()))
	out := buf.String()

	require.True(t, gjson.Valid(out))
	assert.Equal(t, "orders.edi", gjson.Get(out, "source").String())
	assert.Equal(t, "'", gjson.Get(out, "delimiters.segment").String())
	assert.Equal(t, "3", gjson.Get(out, "segments.UNB.0.0.1").String())
	assert.Equal(t, "X", gjson.Get(out, "segments.UNB.1.0.0").String())
	assert.Equal(t, "220", gjson.Get(out, "segments.BGM.0.0.0").String())
	assert.False(t, gjson.Get(out, "validation.valid").Bool())
	assert.Equal(t, "UNZ", gjson.Get(out, "validation.missing.0").String())

	var tags []string
	gjson.Get(out, "segments").ForEach(func(key, _ gjson.Result) bool {
		tags = append(tags, key.String())
		return true
	})
	assert.Equal(t, []string{"UNB", "BGM"}, tags)
}

func TestRender_JSONWithoutValidation(t *testing.T) {
	report := newReport(t, "UNS'", nil)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatJSON, DefaultTheme()))

	assert.False(t, gjson.Get(buf.String(), "validation").Exists())
	occurrences := gjson.Get(buf.String(), "segments.UNS").Array()
	require.Len(t, occurrences, 1)
	assert.True(t, occurrences[0].IsArray())
	assert.Empty(t, occurrences[0].Array())
}

func TestRender_CSV(t *testing.T) {
	report := newReport(t, "NAD+BY+1:2'UNS'NAD+SU'", nil)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatCSV, DefaultTheme()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"tag", "occurrence", "element", "component", "value"},
		{"NAD", "1", "1", "1", "BY"},
		{"NAD", "1", "2", "1", "1"},
		{"NAD", "1", "2", "2", "2"},
		{"UNS", "1", "", "", ""},
		{"NAD", "2", "1", "1", "SU"},
	}, rows)
}

func TestRender_XML(t *testing.T) {
	report := newReport(t, "UNB+x'", edi.NewSchema(map[string]bool{"UNB": true, "UNH": true, "UNZ": true}))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, report, FormatXML, DefaultTheme()))

	assert.Contains(t, buf.String(), `<EDI_Document missing="UNH UNZ" valid="false">`)
	assert.Contains(t, buf.String(), `<Segment tag="UNB">`)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Report{}, Format("pdf"), DefaultTheme())
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestTheme_WithDefaults(t *testing.T) {
	theme := Theme{Error: "#000000"}.WithDefaults()
	assert.Equal(t, "#000000", theme.Error)
	assert.Equal(t, DefaultTheme().Highlight, theme.Highlight)
}
