// =============================================================================
// EDI Parser - Configuration Module
// =============================================================================
//
// This module loads the main application configuration (config.yaml). All
// settings are optional; unset values fall back to defaults so the CLI works
// without any configuration file.
//
// EXAMPLE:
//
//   input_dir: ./input
//   output_dir: ./output
//   schema_file: ./schemas/orders.yaml
//   file_patterns: ["*.edi", "*.txt"]
//   output_format: xml
//   output_name_format: "{original}_{timestamp}"
//   max_concurrency: 8
//   log_level: debug
//   theme:
//     highlight: "#B68D40"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ginjaninja78/EDI-parser/internal/render"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file used when --config is not set.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned by the 'process' command for EDI documents.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives rendered documents, error logs and summaries.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives processed input documents.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives copies of rendered documents.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// SchemaFile is the required-segment schema (.yaml, .toml, .json, .xlsx,
	// .csv, .tsv).
	// Empty selects the built-in EDIFACT interchange schema.
	SchemaFile string `yaml:"schema_file"`

	// FilePatterns are glob patterns selecting input documents.
	// Default: ["*.edi", "*.edifact", "*.txt"]
	FilePatterns []string `yaml:"file_patterns"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat is one of text, color, json, csv, xml.
	// Default: "xml"
	OutputFormat string `yaml:"output_format"`

	// OutputNameFormat defines the output file name. Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	// The extension of the output format is appended.
	// Default: "{original}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// Theme is the palette of the color output format.
	Theme render.Theme `yaml:"theme"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed concurrently.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError writes output for documents that fail validation.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	// ArchiveOnSuccess moves processed inputs to the archive directories.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// ArchiveTimestampSubdirs files archives under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveTimestampSubdirs bool `yaml:"archive_timestamp_subdirs"`

	// ArchiveRetentionDays removes archived files older than this many days
	// at the start of a 'process' run. 0 keeps archives forever.
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// ShouldContinueOnError reports the effective ContinueOnError setting.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// ShouldArchive reports the effective ArchiveOnSuccess setting.
func (c *MainConfig) ShouldArchive() bool {
	return c.ArchiveOnSuccess == nil || *c.ArchiveOnSuccess
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// A missing file is not an error when configPath is DefaultConfigFile; the
// defaults are returned instead. Any other missing path is an error.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && configPath == DefaultConfigFile {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if len(config.FilePatterns) == 0 {
		config.FilePatterns = []string{"*.edi", "*.edifact", "*.txt"}
	}
	if config.OutputFormat == "" {
		config.OutputFormat = string(render.FormatXML)
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{uuid}"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	config.Theme = config.Theme.WithDefaults()
}

// validateMainConfig checks enumerated settings.
func validateMainConfig(config *MainConfig) error {
	if _, err := render.ParseFormat(config.OutputFormat); err != nil {
		return err
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	if config.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative")
	}

	return nil
}

// EnsureDirectories creates the input and output directories.
func (c *MainConfig) EnsureDirectories() error {
	dirs := []string{
		c.InputDir,
		c.OutputDir,
		c.InputArchiveDir,
		c.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
