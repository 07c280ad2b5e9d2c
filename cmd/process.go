// =============================================================================
// S&P Global Statutory Filing Parser - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the batch pipeline.
//
// COMMAND USAGE:
//   spglobal process [flags]
//
// FLAGS:
//   --dry-run : Run the full pipeline without writing the workbook or
//               archiving inputs
//   --watch   : Keep running and re-process when new files land in the
//               input directory
//
// PROCESSING PIPELINE:
//   1. Load the configuration
//   2. Discover .xml files in the input directory (lexicographic order)
//   3. Run each file's extraction pipeline (concurrently)
//   4. Fold results into the master collections in lexicographic order
//   5. Write the consolidated workbook
//   6. Archive processed inputs (if configured)
//   7. Print the batch summary
//
// Files are independent, so step 3 fans out; step 4 is the single
// serialization point, and its fixed fold order makes the output
// reproducible across runs on identical inputs.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/aggregate"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/config"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/converter"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/xlsxwriter"
	"github.com/jakemendlovic/SP-Global-Parsing/pkg/utils"
)

// dryRun runs the pipeline without writing output files.
var dryRun bool

// watch keeps the process running and re-processes on new input files.
var watch bool

// watchDebounce batches a burst of filesystem events into one run.
const watchDebounce = 500 * time.Millisecond

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process the XML filing exports and write the consolidated workbook",
	Long: `The process command scans the input directory for XML filing exports,
classifies each worksheet as Page 19 or Schedule P, extracts and normalizes
the records, and writes them to a single two-sheet XLSX workbook.

Files are processed concurrently and independently: an unreadable or
unrecognized file is skipped and logged, and the batch continues. The run
only fails outright when the input directory itself cannot be read. Every
skipped or failed file is counted in the final summary.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)

	processCmd.Flags().BoolVar(
		&watch,
		"watch",
		false,
		"Keep running and re-process when new files arrive",
	)
}

// runProcess loads the configuration, runs one batch, and optionally stays
// resident watching the input directory.
func runProcess() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := runBatch(cfg, logger); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchInput(cfg, logger)
}

// =============================================================================
// BATCH RUN
// =============================================================================

// runBatch processes every .xml file currently in the input directory.
// Only an unreadable input directory is fatal.
func runBatch(cfg *config.Config, logger *slog.Logger) error {
	startTime := time.Now()

	fmt.Println("=== S&P Global Filing Parser ===")

	inputFiles, err := utils.DiscoverInputFiles(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(inputFiles) == 0 {
		fmt.Printf("No XML files found in %s.\n", cfg.InputDir)
		return nil
	}
	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 1: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Each file's pipeline is independent. Results land in a slice indexed
	// by discovery position so the fold below runs in lexicographic order
	// no matter which goroutine finishes first.

	results := make([]converter.Result, len(inputFiles))
	sem := make(chan struct{}, cfg.MaxConcurrency)
	var wg sync.WaitGroup

	for i, file := range inputFiles {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = converter.New(file, logger).Run()
		}(i, file)
	}
	wg.Wait()

	// =========================================================================
	// STEP 2: FOLD RESULTS INTO THE MASTER COLLECTIONS
	// =========================================================================

	collector := aggregate.New()
	for _, res := range results {
		collector.Fold(res.FilePath, res.Page19, res.ScheduleP, res.Events, res.Err)
	}

	for _, ev := range collector.Events() {
		if ev.Kind == types.EventDuplicateDropped {
			logger.Warn("duplicate record dropped", slog.String("file", ev.File), slog.String("key", ev.Detail))
		}
	}

	// =========================================================================
	// STEP 3: WRITE THE CONSOLIDATED WORKBOOK
	// =========================================================================

	outputPath := filepath.Join(cfg.OutputDir, utils.RenderOutputName(cfg.OutputFormat))
	if dryRun {
		fmt.Printf("Dry run: skipping workbook write (%s)\n", outputPath)
	} else {
		if err := xlsxwriter.Write(outputPath, collector.Page19Records(), collector.SchedulePRecords()); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Printf("Wrote %s\n", outputPath)
	}

	// =========================================================================
	// STEP 4: ARCHIVE PROCESSED INPUTS
	// =========================================================================

	if cfg.ArchiveOnSuccess && !dryRun {
		for _, res := range results {
			if res.Err != nil {
				continue // failed files stay in place
			}
			if err := utils.ArchiveFile(res.FilePath, cfg.InputArchiveDir); err != nil {
				logger.Warn("failed to archive input", slog.Any("error", err))
			}
		}
	}

	// =========================================================================
	// STEP 5: SUMMARY AND ERROR LOG
	// =========================================================================

	summary := collector.Summary()
	elapsed := time.Since(startTime)

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:        %d\n", len(inputFiles))
	fmt.Printf("Processed:          %d\n", summary.FilesProcessed)
	fmt.Printf("Skipped:            %d\n", summary.FilesSkipped)
	fmt.Printf("Failed:             %d\n", summary.FilesFailed)
	fmt.Printf("Page 19 records:    %d\n", summary.Page19Records)
	fmt.Printf("Schedule P records: %d\n", summary.SchedulePRecords)
	fmt.Printf("Duplicates dropped: %d\n", summary.DuplicatesDropped)
	fmt.Printf("Time elapsed:       %s\n", elapsed)

	if summary.FilesFailed > 0 && !dryRun {
		if path, err := writeErrorLog(cfg, results, collector.Events()); err != nil {
			logger.Warn("failed to write error log", slog.Any("error", err))
		} else {
			fmt.Printf("\nErrors have been logged to %s\n", path)
		}
	}

	return nil
}

// writeErrorLog records file-level errors and worksheet failure events.
func writeErrorLog(cfg *config.Config, results []converter.Result, events []types.Event) (string, error) {
	var lines []string
	for _, res := range results {
		if res.Err != nil {
			lines = append(lines, fmt.Sprintf("%s: %v", res.FilePath, res.Err))
		}
	}
	for _, ev := range events {
		if ev.Kind == types.EventExtractionFailed {
			lines = append(lines, ev.String())
		}
	}
	return utils.WriteErrorLog(cfg.OutputDir, lines)
}

// =============================================================================
// WATCH MODE
// =============================================================================

// watchInput stays resident and re-runs the batch when new .xml files land
// in the input directory. A short debounce batches a multi-file drop into
// one run. Interrupt stops the watcher cleanly.
func watchInput(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.InputDir, err)
	}
	fmt.Printf("\nWatching %s for new files (Ctrl-C to stop)...\n", cfg.InputDir)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopping watcher.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}
			logger.Debug("input change detected", slog.String("path", event.Name))
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(watchDebounce)
			pending = true

		case <-debounce.C:
			pending = false
			if err := runBatch(cfg, logger); err != nil {
				logger.Error("batch run failed", slog.Any("error", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}
