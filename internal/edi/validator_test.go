package edi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingRequiredSegment(t *testing.T) {
	doc, err := Parse("UNB+UNOC:3'BGM+220'")
	require.NoError(t, err)

	valid, missing := Validate(doc, NewSchema(map[string]bool{"UNB": true, "XYZ": true}))

	assert.False(t, valid)
	assert.Equal(t, []string{"XYZ"}, missing)
}

func TestValidate_AllPresent(t *testing.T) {
	doc, err := Parse(ordersDocument)
	require.NoError(t, err)

	schema := NewSchema(map[string]bool{"UNB": true, "UNH": true, "BGM": true, "UNT": true, "UNZ": true})
	valid, missing := Validate(doc, schema)

	assert.True(t, valid)
	assert.Empty(t, missing)
}

func TestValidate_NoRequiredEntries(t *testing.T) {
	schema := NewSchema(map[string]bool{"UNB": false, "FTX": false})

	for _, input := range []string{"", "'", "UNB+x'", ordersDocument} {
		doc, err := Parse(input)
		require.NoError(t, err)

		valid, missing := Validate(doc, schema)
		assert.True(t, valid, input)
		assert.Empty(t, missing, input)
	}
}

func TestValidate_EmptyDocument(t *testing.T) {
	doc, err := Parse("  ' ")
	require.NoError(t, err)

	valid, missing := Validate(doc, &Schema{})
	assert.True(t, valid)
	assert.Empty(t, missing)

	valid, missing = Validate(doc, NewSchema(map[string]bool{"UNB": true}))
	assert.False(t, valid)
	assert.Equal(t, []string{"UNB"}, missing)
}

func TestValidate_UnknownTagsIgnored(t *testing.T) {
	doc, err := Parse("UNB+x'ZZZ+y'")
	require.NoError(t, err)

	valid, missing := Validate(doc, NewSchema(map[string]bool{"UNB": true}))
	assert.True(t, valid)
	assert.Empty(t, missing)
}

func TestValidate_MissingInSchemaOrder(t *testing.T) {
	schema := &Schema{Segments: []SegmentRule{
		{Tag: "UNZ", Required: true},
		{Tag: "UNB", Required: true},
		{Tag: "BGM", Required: true},
	}}

	valid, missing := Validate(NewDocument(), schema)
	assert.False(t, valid)
	assert.Equal(t, []string{"UNZ", "UNB", "BGM"}, missing)
}

func TestValidate_NilInputs(t *testing.T) {
	valid, missing := Validate(nil, nil)
	assert.True(t, valid)
	assert.Empty(t, missing)
}

func TestValidator_ValidateAll(t *testing.T) {
	doc, err := Parse("UNB+x'")
	require.NoError(t, err)

	schema := NewSchema(map[string]bool{"UNB": true, "UNH": true, "UNZ": true, "FTX": false})
	result := NewValidator(schema).ValidateAll(doc)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"UNH", "UNZ"}, result.Missing)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, 4, result.SegmentsChecked)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "required", result.Errors[0].Rule)
	assert.Equal(t, "[ERROR] Segment UNH: Missing required segment: UNH", result.Errors[0].Error())
}

func TestValidator_StopOnFirstError(t *testing.T) {
	options := DefaultValidationOptions()
	options.StopOnFirstError = true

	schema := NewSchema(map[string]bool{"UNB": true, "UNH": true})
	result := NewValidatorWithOptions(schema, options).ValidateAll(NewDocument())

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"UNB"}, result.Missing)
	assert.Equal(t, 1, result.ErrorCount)
}

func TestValidator_SegmentValidators(t *testing.T) {
	doc, err := Parse("NAD+BY+1'NAD+XX+2'")
	require.NoError(t, err)

	options := DefaultValidationOptions()
	options.SegmentValidators["NAD"] = func(segment Segment, occurrence int) string {
		if len(segment) == 0 || segment[0][0] != "BY" {
			return "party qualifier must be BY"
		}
		return ""
	}

	result := NewValidatorWithOptions(NewSchema(map[string]bool{"NAD": true}), options).ValidateAll(doc)

	assert.False(t, result.IsValid)
	assert.Empty(t, result.Missing)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "error", result.Errors[0].Severity)
	assert.Equal(t, 2, result.Errors[0].Occurrence)
	assert.Equal(t, "[ERROR] Segment NAD #2: party qualifier must be BY", result.Errors[0].Error())
}

func TestSchema_RequiredTags(t *testing.T) {
	schema := NewSchema(map[string]bool{"UNZ": true, "FTX": false, "BGM": true})
	assert.Equal(t, []string{"BGM", "UNZ"}, schema.RequiredTags())
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "No validation errors.", FormatErrors(nil))

	out := FormatErrors([]*ValidationError{{Severity: "error", Segment: "UNB", Rule: "required", Message: "Missing required segment: UNB"}})
	assert.Contains(t, out, "Found 1 validation error(s):")
	assert.Contains(t, out, "1. [ERROR] Segment UNB: Missing required segment: UNB")
}
