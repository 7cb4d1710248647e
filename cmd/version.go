// =============================================================================
// EDI Parser - Version Command
// =============================================================================
//
// Prints the build information together with the configuration the other
// commands would run with:
//
//   EDI Parser
//   Version:    0.1.0
//   Build Date: unknown
//   Go Version: go1.24.11
//   Config:     config.yaml
//   Schema:     built-in EDIFACT
//
// Version and BuildDate are overridden at link time:
//   go build -ldflags "-X 'github.com/ginjaninja78/EDI-parser/cmd.Version=1.0.0'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the application version.
var Version = "0.1.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long: `Display the application version, build date and Go runtime version,
followed by the configuration file and schema selected by --config.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(out io.Writer) {
	schemaSource := "built-in EDIFACT"
	if appConfig != nil && appConfig.SchemaFile != "" {
		schemaSource = appConfig.SchemaFile
	}

	fmt.Fprintln(out, "EDI Parser")
	fmt.Fprintf(out, "Version:    %s\n", Version)
	fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(out, "Config:     %s\n", cfgFile)
	fmt.Fprintf(out, "Schema:     %s\n", schemaSource)
}
