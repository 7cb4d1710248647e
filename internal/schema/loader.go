// =============================================================================
// EDI Parser - Schema Loader
// =============================================================================
//
// Loads the required-segment schema used by the validator from a file. The
// format is chosen by file extension:
//
//   .yaml / .yml : YAML
//   .toml        : TOML
//   .json        : JSON
//   .xlsx        : XLSX template (see xlsx.go)
//   .csv / .tsv  : delimited template (see csv.go)
//
// YAML example:
//
//   name: ORDERS
//   segments:
//     - tag: UNB
//       required: true
//     - tag: FTX
//       required: false
//       description: Free text
//
// TOML example:
//
//   name = "ORDERS"
//   [[segments]]
//   tag = "UNB"
//   required = true
//
// =============================================================================

package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ginjaninja78/EDI-parser/internal/edi"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for schema files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported schema format")

// Load reads a schema file, choosing the decoder by extension.
func Load(path string) (*edi.Schema, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".xlsx":
		return LoadXLSX(path)
	case ".csv", ".tsv":
		return LoadCSV(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schema *edi.Schema
	switch ext {
	case ".yaml", ".yml":
		schema, err = ParseYAML(data)
	case ".toml":
		schema, err = ParseTOML(data)
	case ".json":
		schema, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	if schema.Name == "" {
		schema.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return schema, nil
}

// ParseYAML decodes a YAML schema. Besides the segments list it accepts a
// mapping keyed by tag, kept in file order:
//
//   UNB: {required: true}
//   FTX: {required: false, description: Free text}
//   UNZ: true
func ParseYAML(data []byte) (*edi.Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	var schema edi.Schema
	if len(root.Content) == 0 {
		return normalize(&schema)
	}

	if mapping := root.Content[0]; mapping.Kind == yaml.MappingNode && !hasKey(mapping, "segments") {
		if err := decodeTagMapping(mapping, &schema); err != nil {
			return nil, err
		}
		return normalize(&schema)
	}

	if err := root.Decode(&schema); err != nil {
		return nil, err
	}
	return normalize(&schema)
}

// hasKey reports whether the mapping node has the given key.
func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// decodeTagMapping reads rules from a mapping of tag to rule. A "name" key
// sets the schema name; a bare boolean is shorthand for required.
func decodeTagMapping(mapping *yaml.Node, schema *edi.Schema) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if key.Value == "name" {
			schema.Name = value.Value
			continue
		}

		rule := edi.SegmentRule{Tag: key.Value}
		if value.Kind == yaml.ScalarNode && value.Tag == "!!bool" {
			if err := value.Decode(&rule.Required); err != nil {
				return fmt.Errorf("segment %s: %w", key.Value, err)
			}
		} else if err := value.Decode(&rule); err != nil {
			return fmt.Errorf("segment %s: %w", key.Value, err)
		}

		rule.Tag = key.Value
		schema.Segments = append(schema.Segments, rule)
	}
	return nil
}

// ParseTOML decodes a TOML schema.
func ParseTOML(data []byte) (*edi.Schema, error) {
	var schema edi.Schema
	if _, err := toml.Decode(string(data), &schema); err != nil {
		return nil, err
	}
	return normalize(&schema)
}

// ParseJSON decodes a JSON schema.
func ParseJSON(data []byte) (*edi.Schema, error) {
	var schema edi.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return normalize(&schema)
}

// Default returns the required segments of an EDIFACT interchange carrying a
// single message.
func Default() *edi.Schema {
	return &edi.Schema{
		Name: "EDIFACT",
		Segments: []edi.SegmentRule{
			{Tag: "UNB", Required: true, Description: "Interchange header"},
			{Tag: "UNH", Required: true, Description: "Message header"},
			{Tag: "BGM", Required: true, Description: "Beginning of message"},
			{Tag: "UNT", Required: true, Description: "Message trailer"},
			{Tag: "UNZ", Required: true, Description: "Interchange trailer"},
		},
	}
}

// normalize trims tags and rejects empty or duplicate ones.
func normalize(schema *edi.Schema) (*edi.Schema, error) {
	seen := make(map[string]bool, len(schema.Segments))

	for i := range schema.Segments {
		tag := strings.TrimSpace(schema.Segments[i].Tag)
		if tag == "" {
			return nil, fmt.Errorf("segment rule %d has no tag", i+1)
		}
		if seen[tag] {
			return nil, fmt.Errorf("duplicate segment rule for tag %s", tag)
		}
		seen[tag] = true
		schema.Segments[i].Tag = tag
	}

	return schema, nil
}
