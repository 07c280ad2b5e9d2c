// =============================================================================
// S&P Global Statutory Filing Parser - Shared Types
// =============================================================================
//
// This package contains the shared record and event types used across the
// pipeline, kept in their own package to avoid import cycles. Types defined
// here are used by:
//   - classifier
//   - extractor
//   - aggregate
//   - converter
//   - xlsxwriter
//
// =============================================================================

package types

import "fmt"

// =============================================================================
// REPORT TYPE
// =============================================================================

// ReportKind identifies which statutory report format a worksheet carries.
type ReportKind int

const (
	// Unknown means neither fingerprint matched. This yields a skip, not an
	// error.
	Unknown ReportKind = iota

	// Page19 is the Exhibit of Premiums and Losses (single flat table,
	// one state scope per worksheet).
	Page19

	// ScheduleP is Schedule P - Part 1 (three aligned sub-tables keyed by
	// accident year).
	ScheduleP
)

// String returns the report kind as it appears in logs and events.
func (k ReportKind) String() string {
	switch k {
	case Page19:
		return "Page19"
	case ScheduleP:
		return "ScheduleP"
	default:
		return "Unknown"
	}
}

// GrandTotal is the country-wide scope marker for a Page 19 worksheet that
// is not filed for a specific state.
const GrandTotal = "GRAND_TOTAL"

// ReportType is the classification result for a single worksheet.
// It is determined once per worksheet and immutable afterward.
type ReportType struct {
	// Kind is the detected report format.
	Kind ReportKind

	// State is the Page 19 scope: GrandTotal or a 2-letter state code.
	// Empty unless Kind is Page19.
	State string

	// LOB is the Schedule P line of business ("AL" or "APD").
	// Empty unless Kind is ScheduleP.
	LOB string
}

// =============================================================================
// RECORDS
// =============================================================================

// Page19Record is one normalized Exhibit of Premiums and Losses row.
// Numeric fields are pointers: nil means the source cell was missing or
// unparseable, which is distinct from an actual zero.
type Page19Record struct {
	Year        int
	CompanyName string
	NAIC        string
	State       string
	Liability   string
	LOB         string
	GWP         *float64
	EP          *float64

	// LossesIncurred is the sum of DirectLossesIncurred and DCC. It is nil
	// only when both components are nil.
	LossesIncurred *float64

	DirectLossesIncurred *float64
	DCC                  *float64
}

// Key returns the uniqueness key used for deduplication.
func (r Page19Record) Key() Page19Key {
	return Page19Key{NAIC: r.NAIC, Year: r.Year, State: r.State, LOB: r.LOB}
}

// Page19Key is the (NAIC, Year, State, LOB) uniqueness key for Page 19
// records. Duplicates on this key are collapsed first-wins.
type Page19Key struct {
	NAIC  string
	Year  int
	State string
	LOB   string
}

// String formats the key for duplicate-dropped events.
func (k Page19Key) String() string {
	return fmt.Sprintf("(NAIC=%s, Year=%d, State=%s, LOB=%s)", k.NAIC, k.Year, k.State, k.LOB)
}

// SchedulePRecord is one normalized Schedule P accident-year row. No
// deduplication is applied: each (worksheet, accident year) contributes a
// row, and duplicates across files are preserved as distinct observations.
type SchedulePRecord struct {
	ReportYear     int
	CompanyName    string
	NAIC           string
	LOB            string
	AccidentYear   int
	EP             *float64
	LossesIncurred *float64
	Claims         *float64
}

// =============================================================================
// STATUS EVENTS
// =============================================================================

// EventKind classifies a per-file status event.
type EventKind string

const (
	// EventClassified is emitted when a worksheet matched a known report
	// format and was extracted.
	EventClassified EventKind = "classified"

	// EventSkippedUnknown is emitted when a worksheet matched neither
	// fingerprint and was skipped.
	EventSkippedUnknown EventKind = "skipped-unknown"

	// EventExtractionFailed is emitted when a required column anchor could
	// not be resolved or the worksheet metadata was malformed.
	EventExtractionFailed EventKind = "extraction-failed"

	// EventDuplicateDropped is emitted when a Page 19 record collided with
	// an already-collected key and was discarded.
	EventDuplicateDropped EventKind = "duplicate-dropped"
)

// Event is a single observability event. Events are collected, never thrown:
// no event aborts a row, a file, or the batch.
type Event struct {
	Kind   EventKind
	File   string
	Sheet  string
	Report ReportKind

	// Detail carries event-specific context, such as the missing anchor
	// code or the duplicate key.
	Detail string
}

// String renders the event for logs and the error log file.
func (e Event) String() string {
	s := fmt.Sprintf("[%s] %s", e.Kind, e.File)
	if e.Sheet != "" {
		s += " sheet=" + e.Sheet
	}
	if e.Report != Unknown {
		s += " report=" + e.Report.String()
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}
