// =============================================================================
// EDI Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ediparser)
//   ├── parseCmd    (ediparser parse)
//   ├── validateCmd (ediparser validate)
//   ├── processCmd  (ediparser process)
//   ├── knownCmd    (ediparser known)
//   └── versionCmd  (ediparser version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the main configuration (--config)
//   2. Sets up logging (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ginjaninja78/EDI-parser/internal/config"
	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/logging"
	"github.com/ginjaninja78/EDI-parser/internal/schema"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// noColor replaces the color output format with plain text.
var noColor bool

// appConfig and logger are set by the root command before a subcommand runs.
var (
	appConfig *config.MainConfig
	logger    *slog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ediparser",
	Short: "EDI Parser - Tokenize EDI/EDIFACT documents and check required segments",
	Long: `EDI Parser reads EDI/EDIFACT documents, honors the delimiters declared in
an optional UNA service string advice, and groups the segments by tag. Each
document can be checked against a schema of required segments.

Key Features:
  - UNA delimiter detection with EDIFACT defaults
  - Required-segment validation with YAML, TOML, JSON or XLSX schemas
  - Text, color, JSON, CSV and XML output
  - Concurrent batch processing with archival
  - Reference tables of common EDI document codes

Example Usage:
  ediparser parse orders.edi               # Print the segments of a document
  ediparser validate --schema orders.yaml *.edi
  ediparser process                        # Process the input directory
  ediparser known --standard EDIFACT       # List known EDIFACT documents`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.ErrOrStderr())
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable colored output",
	)
}

// initApp loads the configuration and builds the logger. Logs go to w.
func initApp(w io.Writer) error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	l, err := logging.New(w, level, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	appConfig = cfg
	logger = l
	logger.Debug("configuration loaded", "config", cfgFile, "output_format", cfg.OutputFormat)

	return nil
}

// loadSchema returns the schema named by path, falling back to the configured
// schema file and then to the built-in EDIFACT interchange schema.
func loadSchema(path string) (*edi.Schema, error) {
	if path == "" {
		path = appConfig.SchemaFile
	}
	if path == "" {
		return schema.Default(), nil
	}

	s, err := schema.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	logger.Debug("schema loaded", "schema", s.Name, "segments", len(s.Segments))
	return s, nil
}
