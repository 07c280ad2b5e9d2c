// =============================================================================
// S&P Global Statutory Filing Parser - Converter Module
// =============================================================================
//
// This module runs the extraction pipeline for a single input file, from
// raw XML bytes to normalized records plus status events.
//
// PIPELINE (per worksheet):
//   1. Parse the SpreadsheetML into a workbook tree
//   2. Classify the worksheet (Page 19 / Schedule P / Unknown)
//   3. Resolve the column anchor map for the detected format
//   4. Extract and normalize the data rows
//
// Each file's processing is a pure function of its bytes: no state is
// shared between files, so converters run safely in parallel. Failures
// never escape the Result - a malformed file, an unclassifiable worksheet,
// or a missing anchor code is recorded and the batch moves on.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/classifier"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/extractor"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of processing a single file.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// Page19 and ScheduleP hold the extracted records, in worksheet order.
	Page19    []types.Page19Record
	ScheduleP []types.SchedulePRecord

	// Events are the per-worksheet status events emitted while processing.
	Events []types.Event

	// Err is set only when the file itself could not be read or parsed.
	// Worksheet-level problems are events, not errors.
	Err error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about one file's processing.
type ProcessingStats struct {
	// WorksheetsSeen is the number of worksheets in the workbook.
	WorksheetsSeen int

	// WorksheetsExtracted is the number of worksheets that classified and
	// extracted successfully.
	WorksheetsExtracted int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Converter processes one input file.
type Converter struct {
	filePath string
	logger   *slog.Logger
}

// New creates a Converter for the given file.
func New(filePath string, logger *slog.Logger) *Converter {
	return &Converter{filePath: filePath, logger: logger.With(slog.String("file", filePath))}
}

// Run executes the extraction pipeline and returns the file's Result.
func (c *Converter) Run() Result {
	start := time.Now()
	result := Result{FilePath: c.filePath}

	wb, err := ssml.ParseFile(c.filePath)
	if err != nil {
		c.logger.Error("unreadable file", slog.Any("error", err))
		result.Err = fmt.Errorf("unreadable file: %w", err)
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	result.Stats.WorksheetsSeen = len(wb.Worksheets)
	for _, ws := range wb.Worksheets {
		c.processWorksheet(ws, &result)
	}

	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// processWorksheet classifies and extracts a single worksheet, appending
// records and events to the result.
func (c *Converter) processWorksheet(ws ssml.Worksheet, result *Result) {
	report := classifier.Classify(ws)

	switch report.Kind {
	case types.Page19:
		records, err := extractor.Page19(ws, report)
		if err != nil {
			c.failWorksheet(ws, report, err, result)
			return
		}
		c.classifiedWorksheet(ws, report, len(records), result)
		result.Page19 = append(result.Page19, records...)

	case types.ScheduleP:
		if report.LOB == "" {
			// Summary and other non-LOB Schedule P sheets carry no
			// extractable sub-tables.
			c.logger.Debug("skipping Schedule P summary/other sheet", slog.String("sheet", ws.Name))
			result.Events = append(result.Events, types.Event{
				Kind:   types.EventSkippedUnknown,
				File:   c.filePath,
				Sheet:  ws.Name,
				Report: types.ScheduleP,
				Detail: "summary/other sheet",
			})
			return
		}
		records, err := extractor.ScheduleP(ws, report)
		if err != nil {
			c.failWorksheet(ws, report, err, result)
			return
		}
		c.classifiedWorksheet(ws, report, len(records), result)
		result.ScheduleP = append(result.ScheduleP, records...)

	default:
		c.logger.Debug("worksheet matched no report fingerprint", slog.String("sheet", ws.Name))
		result.Events = append(result.Events, types.Event{
			Kind:  types.EventSkippedUnknown,
			File:  c.filePath,
			Sheet: ws.Name,
		})
	}
}

// classifiedWorksheet records a successful worksheet extraction.
func (c *Converter) classifiedWorksheet(ws ssml.Worksheet, report types.ReportType, count int, result *Result) {
	c.logger.Info("worksheet extracted",
		slog.String("sheet", ws.Name),
		slog.String("report", report.Kind.String()),
		slog.Int("records", count))
	result.Stats.WorksheetsExtracted++
	result.Events = append(result.Events, types.Event{
		Kind:   types.EventClassified,
		File:   c.filePath,
		Sheet:  ws.Name,
		Report: report.Kind,
		Detail: fmt.Sprintf("%d record(s)", count),
	})
}

// failWorksheet records a worksheet whose extraction was abandoned. Other
// worksheets in the same file still proceed.
func (c *Converter) failWorksheet(ws ssml.Worksheet, report types.ReportType, err error, result *Result) {
	c.logger.Warn("worksheet extraction failed",
		slog.String("sheet", ws.Name),
		slog.String("report", report.Kind.String()),
		slog.Any("error", err))
	result.Events = append(result.Events, types.Event{
		Kind:   types.EventExtractionFailed,
		File:   c.filePath,
		Sheet:  ws.Name,
		Report: report.Kind,
		Detail: err.Error(),
	})
}
