// =============================================================================
// EDI Parser - Parse Command
// =============================================================================
//
// This file defines the 'parse' command, which tokenizes a single document,
// prints its segments grouped by tag and reports whether every required
// segment is present.
//
// COMMAND USAGE:
//   ediparser parse [file | -] [flags]
//
// FLAGS:
//   --text            : Parse the given literal instead of a file
//   --format          : Output format (text, color, json, csv, xml)
//   --schema          : Required-segment schema file
//   --skip-validation : Only print the segments
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/processor"
	"github.com/ginjaninja78/EDI-parser/internal/render"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	parseText           string
	parseFormat         string
	parseSchema         string
	parseSkipValidation bool
)

// stdinArg selects standard input as the document source.
const stdinArg = "-"

// =============================================================================
// PARSE COMMAND DEFINITION
// =============================================================================

var parseCmd = &cobra.Command{
	Use:   "parse [file | -]",
	Short: "Parse an EDI document and print its segments",
	Long: `The parse command tokenizes one EDI/EDIFACT document and prints every
segment occurrence grouped by tag, in order of first appearance. Delimiters
come from the UNA header when present and default to the EDIFACT set
(' + : . ?) otherwise.

Unless --skip-validation is set, the document is checked against the schema
and each missing required segment is reported.

The document is read from the file argument, from standard input when the
argument is "-" or missing, or from --text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseText, "text", "", "Parse this document text instead of a file")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", string(render.FormatColor), "Output format (text, color, json, csv, xml)")
	parseCmd.Flags().StringVar(&parseSchema, "schema", "", "Required-segment schema file (.yaml, .toml, .json, .xlsx)")
	parseCmd.Flags().BoolVar(&parseSkipValidation, "skip-validation", false, "Print the segments without validating them")
}

// =============================================================================
// MAIN FUNCTION
// =============================================================================

func runParse(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(parseFormat)
	if err != nil {
		return err
	}

	source, raw, err := readDocument(cmd, args, parseText)
	if err != nil {
		return err
	}

	var s *edi.Schema
	if !parseSkipValidation {
		if s, err = loadSchema(parseSchema); err != nil {
			return err
		}
	}

	report, err := processor.Analyze(source, raw, s)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", source, err)
	}

	logger.Debug("parsed document", "source", source, "segments", report.Document.SegmentCount())

	return render.Render(cmd.OutOrStdout(), report, format, appConfig.Theme)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// outputFormat parses name and applies --no-color.
func outputFormat(name string) (render.Format, error) {
	format, err := render.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if noColor && format == render.FormatColor {
		format = render.FormatText
	}
	return format, nil
}

// readDocument returns the document source name and its text.
func readDocument(cmd *cobra.Command, args []string, text string) (string, string, error) {
	if text != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("--text cannot be combined with a file argument")
		}
		return "", text, nil
	}

	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read document: %w", err)
	}
	return args[0], string(data), nil
}
