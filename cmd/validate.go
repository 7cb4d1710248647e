// =============================================================================
// EDI Parser - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks documents for their
// required segments without rendering them.
//
// COMMAND USAGE:
//   ediparser validate [files... | -] [flags]
//
// EXIT STATUS:
//   0 when every document is valid, 1 otherwise.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/processor"
	"github.com/spf13/cobra"
)

var (
	validateText   string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate [files... | -]",
	Short: "Check EDI documents for required segments",
	Long: `The validate command parses each document and checks that every segment
marked required in the schema occurs at least once. Missing segments are
listed per document.

The command fails when any document is invalid or cannot be parsed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateText, "text", "", "Validate this document text instead of files")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Required-segment schema file (.yaml, .toml, .json, .xlsx)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(validateSchema)
	if err != nil {
		return err
	}

	if validateText != "" && len(args) > 0 {
		return fmt.Errorf("--text cannot be combined with file arguments")
	}

	// stdin and --text count as a single input.
	inputs := args
	if len(inputs) == 0 {
		inputs = []string{stdinArg}
	}

	out := cmd.OutOrStdout()
	invalid := 0

	for _, input := range inputs {
		var docArgs []string
		if validateText == "" {
			docArgs = []string{input}
		}

		source, raw, err := readDocument(cmd, docArgs, validateText)
		if err != nil {
			return err
		}
		if source == "" {
			source = "text"
		}

		report, err := processor.Analyze(source, raw, s)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(source), err)
			continue
		}

		result := report.Validation
		if result.IsValid {
			fmt.Fprintf(out, "  ✓ %s: valid\n", filepath.Base(source))
			continue
		}

		invalid++
		fmt.Fprintf(out, "  ✗ %s: invalid\n", filepath.Base(source))
		fmt.Fprint(out, indent(edi.FormatErrors(result.Errors)))
		logger.Debug("document invalid", "source", source, "missing", result.Missing)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d document(s) invalid", invalid, len(inputs))
	}

	return nil
}

// indent prefixes every line of s with four spaces.
func indent(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return "    " + strings.ReplaceAll(s, "\n", "\n    ") + "\n"
}
