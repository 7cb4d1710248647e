// =============================================================================
// EDI Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full pipeline over
// every document in the input directory.
//
// COMMAND USAGE:
//   ediparser process [flags]
//
// FLAGS:
//   --dry-run : Parse and validate without writing or archiving anything
//   --file    : Process only this file
//   --schema  : Required-segment schema file
//
// PROCESSING PIPELINE:
//   1. Load the schema
//   2. Remove expired archives (archive_retention_days)
//   3. Discover input documents (file_patterns)
//   4. For each document (concurrently, at most max_concurrency at a time):
//      a. Parse the document
//      b. Validate the required segments
//      c. Render and write the output file
//      d. Archive the input and output
//   5. Write the error log and the summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ginjaninja78/EDI-parser/internal/processor"
	"github.com/ginjaninja78/EDI-parser/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath is the path to a specific file to process.
var filePath string

// processSchema overrides the configured schema file.
var processSchema string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process the EDI documents in the input directory",
	Long: `The process command scans the input directory for EDI documents, checks
each one for its required segments and renders it in the configured output
format.

Processing is done concurrently. Each file is processed independently, and
errors in one file do not affect the processing of others.

On successful processing:
  - The rendered document is placed in the output directory
  - The original document is moved to the input archive
  - A summary report is generated

On error:
  - An error log is created in the output directory
  - The original document remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and validate without writing output files",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process",
	)

	processCmd.Flags().StringVar(
		&processSchema,
		"schema",
		"",
		"Required-segment schema file (.yaml, .toml, .json, .xlsx)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== EDI Parser ===")

	// =========================================================================
	// STEP 1: LOAD SCHEMA AND PREPARE DIRECTORIES
	// =========================================================================

	s, err := loadSchema(processSchema)
	if err != nil {
		return err
	}

	if err := appConfig.EnsureDirectories(); err != nil {
		return err
	}

	files := utils.NewFileManager(
		appConfig.InputDir,
		appConfig.OutputDir,
		appConfig.InputArchiveDir,
		appConfig.OutputArchiveDir,
	)

	// =========================================================================
	// STEP 2: CLEAN EXPIRED ARCHIVES
	// =========================================================================

	if days := appConfig.ArchiveRetentionDays; days > 0 && !dryRun {
		maxAge := time.Duration(days) * 24 * time.Hour
		for _, dir := range []string{appConfig.InputArchiveDir, appConfig.OutputArchiveDir} {
			removed, err := utils.CleanOldArchives(dir, maxAge)
			if err != nil {
				logger.Warn("failed to clean archives", "dir", dir, "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("removed expired archives", "dir", dir, "count", removed)
			}
		}
	}

	// =========================================================================
	// STEP 3: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = files.DiscoverInputFiles(appConfig.FilePatterns)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No EDI documents found in the input directory.")
		return nil
	}

	fmt.Fprintf(out, "Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 4: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// At most max_concurrency documents are in flight; the buffered results
	// channel never blocks a worker.

	var wg sync.WaitGroup
	results := make(chan processor.Result, len(inputFiles))
	slots := make(chan struct{}, appConfig.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			slots <- struct{}{}
			defer func() { <-slots }()

			p := processor.New(path, s, appConfig, logger)
			p.DryRun = dryRun
			results <- p.Run()
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 5: COLLECT RESULTS AND GENERATE SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}
	var errorEntries []utils.ErrorLogEntry

	for result := range results {
		name := filepath.Base(result.FilePath)

		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
			})
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     name,
				ErrorType:    "processing",
				ErrorMessage: result.Error.Error(),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
			continue
		}

		summary.TotalSegments += result.Stats.Segments
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFile:  result.OutputFile,
			Valid:       result.Valid,
			Missing:     result.Missing,
			Segments:    result.Stats.Segments,
			ProcessTime: result.Stats.ProcessingTime,
		})

		if result.Valid {
			summary.ValidFiles++
			fmt.Fprintf(out, "  ✓ %s -> %s\n", name, result.OutputFile)
			continue
		}

		summary.InvalidFiles++
		for _, tag := range result.Missing {
			errorEntries = append(errorEntries, utils.ErrorLogEntry{
				Timestamp:    time.Now(),
				FileName:     name,
				ErrorType:    "validation",
				ErrorMessage: "Missing required segment: " + tag,
				Segment:      tag,
			})
		}
		fmt.Fprintf(out, "  ! %s -> %s (missing %v)\n", name, result.OutputFile, result.Missing)
	}

	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Valid:           %d\n", summary.ValidFiles)
	fmt.Fprintf(out, "Invalid:         %d\n", summary.InvalidFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if dryRun {
		return nil
	}

	logPath, err := utils.WriteErrorLog(errorEntries, appConfig.OutputDir)
	if err != nil {
		logger.Error("failed to write error log", "error", err)
	} else if logPath != "" {
		fmt.Fprintf(out, "\nErrors have been logged to %s\n", logPath)
	}

	summaryPath, err := utils.WriteSummaryLog(summary, appConfig.OutputDir)
	if err != nil {
		logger.Error("failed to write summary", "error", err)
	} else {
		logger.Info("wrote summary", "path", summaryPath)
	}

	return nil
}
