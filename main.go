// =============================================================================
// EDI Parser - Main Entry Point
// =============================================================================
//
// This is the main entry point for the EDI Parser CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   ediparser parse      - Print the segments of a document
//   ediparser validate   - Check documents for required segments
//   ediparser process    - Process all documents in the input directory
//   ediparser known      - List known EDI document codes
//   ediparser version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/                : CLI command definitions (Cobra)
//   - internal/edi        : Tokenizer, document model and validator
//   - internal/schema     : Schema loading (YAML, TOML, JSON, XLSX)
//   - internal/render     : Output formats
//   - internal/processor  : Single-file processing pipeline
//   - internal/known      : Reference tables of document codes
//   - internal/xmlwriter  : XML generation
//   - pkg/utils           : File management for batch processing
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/EDI-parser/cmd"
)

func main() {
	cmd.Execute()
}
