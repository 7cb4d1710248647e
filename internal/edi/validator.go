// =============================================================================
// EDI Parser - Schema Validator
// =============================================================================
//
// Checks a parsed Document against a Schema of required segments.
//
// VALIDATION STRATEGY:
//   - Every rule marked Required must have at least one occurrence
//   - Tags present in the document but absent from the schema are ignored
//   - Optional per-segment validators can inspect each occurrence of a tag;
//     none are registered by default
//
// ERROR HANDLING:
//   - A missing segment is a result, not an error: IsValid is false and the
//     tag is listed in Missing
//   - Errors are collected, each with the segment tag and the violated rule
//
// =============================================================================

package edi

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SCHEMA
// =============================================================================

// SegmentRule declares the expectations for one segment tag.
type SegmentRule struct {
	// Tag is the segment tag, e.g. "UNB".
	Tag string `yaml:"tag" toml:"tag" json:"tag"`

	// Required marks the segment as mandatory.
	Required bool `yaml:"required" toml:"required" json:"required"`

	// Description is a human readable note. Not used by validation.
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
}

// Schema is an ordered list of segment rules.
type Schema struct {
	// Name identifies the schema in diagnostics, e.g. "ORDERS".
	Name string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`

	// Segments are checked in this order.
	Segments []SegmentRule `yaml:"segments" toml:"segments" json:"segments"`
}

// NewSchema builds a Schema from a tag to required-flag map. Rules are sorted
// by tag so diagnostics are deterministic.
func NewSchema(required map[string]bool) *Schema {
	tags := make([]string, 0, len(required))
	for tag := range required {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	schema := &Schema{Segments: make([]SegmentRule, 0, len(tags))}
	for _, tag := range tags {
		schema.Segments = append(schema.Segments, SegmentRule{Tag: tag, Required: required[tag]})
	}
	return schema
}

// RequiredTags returns the tags of all required rules in schema order.
func (s *Schema) RequiredTags() []string {
	var tags []string
	for _, rule := range s.Segments {
		if rule.Required {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationError describes one violated rule.
type ValidationError struct {
	// Severity is always "error"; it prefixes the formatted message.
	Severity string

	// Segment is the tag of the segment concerned.
	Segment string

	// Occurrence is the 1-based occurrence index, 0 for document-level rules.
	Occurrence int

	// Rule is the violated rule, e.g. "required".
	Rule string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Occurrence > 0 {
		return fmt.Sprintf("[%s] Segment %s #%d: %s",
			strings.ToUpper(e.Severity), e.Segment, e.Occurrence, e.Message)
	}
	return fmt.Sprintf("[%s] Segment %s: %s", strings.ToUpper(e.Severity), e.Segment, e.Message)
}

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors.
	IsValid bool

	// Missing lists required tags absent from the document, in schema order.
	Missing []string

	// Errors contains all validation errors.
	Errors []*ValidationError

	// ErrorCount is the number of errors.
	ErrorCount int

	// SegmentsChecked is the number of schema rules evaluated.
	SegmentsChecked int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// SegmentValidatorFunc inspects one occurrence of a segment and returns an
// error message, or "" when the occurrence is acceptable.
type SegmentValidatorFunc func(segment Segment, occurrence int) string

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops after the first error.
	StopOnFirstError bool

	// SegmentValidators run against every occurrence of their tag.
	SegmentValidators map[string]SegmentValidatorFunc
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		SegmentValidators: make(map[string]SegmentValidatorFunc),
	}
}

// Validator checks documents against a schema.
type Validator struct {
	schema  *Schema
	options ValidationOptions
}

// NewValidator creates a Validator with default options.
func NewValidator(schema *Schema) *Validator {
	return NewValidatorWithOptions(schema, DefaultValidationOptions())
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(schema *Schema, options ValidationOptions) *Validator {
	if schema == nil {
		schema = &Schema{}
	}
	return &Validator{schema: schema, options: options}
}

// Validate reports whether doc contains every segment schema requires, and
// which required tags are missing.
func Validate(doc *Document, schema *Schema) (bool, []string) {
	result := NewValidator(schema).ValidateAll(doc)
	return result.IsValid, result.Missing
}

// ValidateAll validates doc and returns a detailed result.
func (v *Validator) ValidateAll(doc *Document) *ValidationResult {
	if doc == nil {
		doc = NewDocument()
	}

	result := &ValidationResult{
		IsValid: true,
		Missing: []string{},
		Errors:  make([]*ValidationError, 0),
	}

	for _, rule := range v.schema.Segments {
		result.SegmentsChecked++

		if rule.Required && !doc.Has(rule.Tag) {
			result.Missing = append(result.Missing, rule.Tag)
			if v.record(result, &ValidationError{
				Severity: "error",
				Segment:  rule.Tag,
				Rule:     "required",
				Message:  fmt.Sprintf("Missing required segment: %s", rule.Tag),
			}) {
				return result
			}
			continue
		}

		if v.validateOccurrences(result, rule.Tag, doc.Occurrences(rule.Tag)) {
			return result
		}
	}

	return result
}

// validateOccurrences runs the registered segment validator for tag. It
// returns true when validation should stop.
func (v *Validator) validateOccurrences(result *ValidationResult, tag string, segments []Segment) bool {
	fn, ok := v.options.SegmentValidators[tag]
	if !ok {
		return false
	}

	for i, segment := range segments {
		if msg := fn(segment, i+1); msg != "" {
			if v.record(result, &ValidationError{
				Severity:   "error",
				Segment:    tag,
				Occurrence: i + 1,
				Rule:       "custom",
				Message:    msg,
			}) {
				return true
			}
		}
	}
	return false
}

// record adds err to result. It returns true when validation should stop.
func (v *Validator) record(result *ValidationResult, err *ValidationError) bool {
	result.Errors = append(result.Errors, err)
	result.ErrorCount++
	result.IsValid = false
	return v.options.StopOnFirstError
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors one per line.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d validation error(s):\n", len(errors)))
	for i, err := range errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
