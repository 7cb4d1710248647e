// =============================================================================
// EDI Parser - Processor Module
// =============================================================================
//
// This module orchestrates the processing pipeline for a single EDI document,
// from the raw file to the rendered output.
//
// PROCESSING PIPELINE:
//   1. Read the input document
//   2. Tokenize it into segments
//   3. Validate the required segments against the schema
//   4. Render the document in the configured output format
//   5. Write the output file
//   6. Archive the processed files
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. A Processor owns its document
//   and shares only read-only state (schema, configuration), so any number of
//   processors can run concurrently.
//
// =============================================================================

package processor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/EDI-parser/internal/config"
	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/ginjaninja78/EDI-parser/internal/logging"
	"github.com/ginjaninja78/EDI-parser/internal/render"
	"github.com/ginjaninja78/EDI-parser/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the rendered output file.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether an output file was produced.
	Success bool

	// Valid reports whether the document contained every required segment.
	Valid bool

	// Missing lists the required tags absent from the document, in schema order.
	Missing []string

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Segments is the number of segment occurrences in the document.
	Segments int

	// Tags is the number of distinct segment tags.
	Tags int

	// ValidationErrors is the number of validation errors encountered.
	ValidationErrors int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor handles the processing of a single EDI document.
type Processor struct {
	// DryRun stops the pipeline after validation: nothing is written or
	// archived.
	DryRun bool

	path   string
	schema *edi.Schema
	config *config.MainConfig
	files  *utils.FileManager
	logger logging.Logger
}

// New creates a Processor for the document at path. A nil logger discards
// log output.
func New(path string, schema *edi.Schema, cfg *config.MainConfig, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Discard()
	}

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	files.ArchiveOnSuccess = cfg.ShouldArchive()
	files.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs

	return &Processor{
		path:   path,
		schema: schema,
		config: cfg,
		files:  files,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the processing pipeline for the file.
//
// A document that fails validation is still rendered (with its validation
// result) unless continue_on_error is disabled, in which case Run fails
// without writing or archiving anything.
func (p *Processor) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: p.path,
		Success:  false,
	}
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	p.logger.Info("processing file", "file", p.path)

	format, err := render.ParseFormat(p.config.OutputFormat)
	if err != nil {
		result.Error = err
		return result
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2 + 3: TOKENIZE AND VALIDATE
	// =========================================================================

	report, err := Analyze(p.path, string(raw), p.schema)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse document: %w", err)
		return result
	}

	result.Stats.Segments = report.Document.SegmentCount()
	result.Stats.Tags = report.Document.Len()
	p.logger.Debug("parsed document", "file", p.path, "segments", result.Stats.Segments, "tags", result.Stats.Tags)

	if report.Validation != nil {
		result.Valid = report.Validation.IsValid
		result.Missing = report.Validation.Missing
		result.Stats.ValidationErrors = report.Validation.ErrorCount

		for _, ve := range report.Validation.Errors {
			p.logger.Warn("validation error", "file", p.path, "error", ve.Error())
		}

		if !result.Valid && !p.config.ShouldContinueOnError() {
			result.Error = fmt.Errorf("validation failed, missing required segments: %s",
				strings.Join(result.Missing, ", "))
			return result
		}
	} else {
		result.Valid = true
	}

	if p.DryRun {
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 4: RENDER OUTPUT
	// =========================================================================

	var buf bytes.Buffer
	if err := render.Render(&buf, report, format, p.config.Theme); err != nil {
		result.Error = fmt.Errorf("failed to render output: %w", err)
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	outputPath, err := p.writeOutput(buf.Bytes(), format)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	p.logger.Info("wrote output", "file", p.path, "output", outputPath, "valid", result.Valid)

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================

	if err := p.archiveFiles(outputPath); err != nil {
		// Log the error but don't fail the processing.
		p.logger.Warn("failed to archive files", "file", p.path, "error", err)
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Analyze tokenizes raw and validates it against schema. A nil schema skips
// validation and leaves Report.Validation nil.
func Analyze(source, raw string, schema *edi.Schema) (render.Report, error) {
	parser := edi.NewParser()
	doc, err := parser.Parse(raw)
	if err != nil {
		return render.Report{}, err
	}

	report := render.Report{
		Source:     source,
		Document:   doc,
		Delimiters: parser.Delimiters(),
	}

	if schema != nil {
		report.Validation = edi.NewValidator(schema).ValidateAll(doc)
	}

	return report, nil
}

// writeOutput writes the rendered document to the output directory.
func (p *Processor) writeOutput(data []byte, format render.Format) (string, error) {
	base := filepath.Base(p.path)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	fileName := utils.GenerateOutputFileName(
		p.config.OutputNameFormat,
		map[string]string{"original": original},
		format.Extension(),
	)
	outputPath := filepath.Join(p.config.OutputDir, fileName)

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return outputPath, nil
}

// archiveFiles moves the input to the input archive and copies the output to
// the output archive.
func (p *Processor) archiveFiles(outputPath string) error {
	if _, err := p.files.ArchiveInputFile(p.path); err != nil {
		return fmt.Errorf("failed to archive input file: %w", err)
	}

	if _, err := p.files.ArchiveOutputFile(outputPath); err != nil {
		return fmt.Errorf("failed to archive output file: %w", err)
	}

	return nil
}
