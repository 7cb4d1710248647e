// =============================================================================
// EDI Parser - Known Command
// =============================================================================
//
// This file defines the 'known' command, which prints reference tables of
// common EDI document codes per standard.
//
// COMMAND USAGE:
//   ediparser known [flags]
//
// FLAGS:
//   --standard : Only list documents of this standard
//   --search   : Look up a single document code
//   --format   : xml (default) or text
//
// In xml format, errors are also written to standard output as an <Error>
// element so the output can be consumed by XML tooling.
//
// =============================================================================

package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ginjaninja78/EDI-parser/internal/known"
	"github.com/ginjaninja78/EDI-parser/internal/xmlwriter"
	"github.com/spf13/cobra"
)

var (
	knownStandard string
	knownSearch   string
	knownFormat   string
)

var knownCmd = &cobra.Command{
	Use:   "known",
	Short: "List known EDI document codes",
	Long: `The known command lists the common document codes of ANSI X12, EDIFACT,
TRADACOMS, VDA and RosettaNet, plus industry-specific X12 documents.

Numeric codes are listed first in numeric order, followed by the remaining
codes alphabetically.

Example Usage:
  ediparser known --standard EDIFACT
  ediparser known --search invoic
  ediparser known --format text`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKnown(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(knownCmd)

	knownCmd.Flags().StringVar(&knownStandard, "standard", "", "Only list documents of this standard")
	knownCmd.Flags().StringVar(&knownSearch, "search", "", "Look up a single document code")
	knownCmd.Flags().StringVarP(&knownFormat, "format", "f", "xml", "Output format (xml, text)")
}

func runKnown(out io.Writer) error {
	switch knownFormat {
	case "xml", "text":
	default:
		return fmt.Errorf("unknown output format %q for known, use xml or text", knownFormat)
	}

	err := writeKnown(out)
	if err != nil && knownFormat == "xml" {
		out.Write(xmlwriter.GenerateError(err.Error()))
	}
	return err
}

func writeKnown(out io.Writer) error {
	if knownSearch != "" {
		match, err := known.Search(knownSearch)
		if err != nil {
			return err
		}

		if knownFormat == "text" {
			_, err := fmt.Fprintf(out, "%s (%s): %s\n", match.Document.Code, match.Standard, match.Document.Description)
			return err
		}

		data, err := xmlwriter.GenerateSearchResult(match)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	standards, err := known.Filter(knownStandard)
	if err != nil {
		return err
	}

	if knownFormat == "text" {
		return writeKnownText(out, standards)
	}

	data, err := xmlwriter.GenerateKnown(standards)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// writeKnownText lists each standard, grouping industry documents under
// their industry.
func writeKnownText(out io.Writer, standards []known.Standard) error {
	bw := bufio.NewWriter(out)

	for i, s := range standards {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "=== %s ===\n", s.Name)

		docs := known.SortedDocuments(s)
		industries := known.Industries(s)
		if len(industries) == 0 {
			for _, doc := range docs {
				fmt.Fprintf(bw, "  %-8s %s\n", doc.Code, doc.Description)
			}
			continue
		}

		for _, industry := range industries {
			fmt.Fprintf(bw, "  %s:\n", industry)
			for _, doc := range docs {
				if doc.Industry == industry {
					fmt.Fprintf(bw, "    %-8s %s\n", doc.Code, doc.Description)
				}
			}
		}
	}

	return bw.Flush()
}
