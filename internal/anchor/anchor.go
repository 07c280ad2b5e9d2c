// =============================================================================
// S&P Global Statutory Filing Parser - Column Anchor Locator
// =============================================================================
//
// This module resolves the positions of data columns inside a worksheet.
// The human-readable column labels in statutory exports drift between filing
// vintages, but the small numeric codes printed in the header band ("1",
// "25", "26", ...) do not. Those codes are the anchors: the locator finds
// the header cells whose text is exactly a required code and records their
// logical column indices.
//
// TWO-PHASE EXTRACTION:
//   Anchors are resolved once per worksheet into a code -> index map; every
//   subsequent row read is index-driven. Text is never re-searched per row.
//
// Column order is not guaranteed stable across files, so the map is built
// fresh for every worksheet. A required code that cannot be found makes the
// worksheet malformed for extraction purposes; the caller abandons that
// worksheet and the batch continues.
//
// =============================================================================

package anchor

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
)

// =============================================================================
// REPORT CODE SETS
// =============================================================================
// The numeric header codes each report format anchors on. The active
// ReportType selects which set is required.

// Page 19 header codes. The Exhibit of Premiums and Losses prints all of
// its codes on a single header row.
const (
	CodePage19GWP    = 1 // Direct Premiums Written
	CodePage19EP     = 2 // Direct Premiums Earned
	CodePage19Losses = 6 // Direct Losses Incurred
	CodePage19DCC    = 9 // Direct Defense and Cost Containment Expense Incurred
)

// Schedule P header codes. The three stacked sub-tables print their codes
// on separate header rows.
const (
	CodeSchedPEP     = 1  // Premiums Earned
	CodeSchedPClaims = 25 // Number of Claims Reported
	CodeSchedPLosses = 26 // Losses and Expenses Incurred
)

// Page19Codes is the required code set for a Page 19 worksheet.
var Page19Codes = []int{CodePage19GWP, CodePage19EP, CodePage19Losses, CodePage19DCC}

// SchedulePCodes is the required code set for a Schedule P worksheet.
var SchedulePCodes = []int{CodeSchedPEP, CodeSchedPClaims, CodeSchedPLosses}

// Page19Options bounds the Page 19 scan to the header band at the top of
// the sheet and requires one row to carry every code.
var Page19Options = Options{MaxRows: 10, SameRow: true}

// SchedulePOptions scans deeper because the second and third sub-table
// headers sit well below the top of the sheet.
var SchedulePOptions = Options{MaxRows: 50, SameRow: false}

// Map resolves a numeric header code to the logical column index carrying
// that code's data.
type Map map[int]int

// Options controls how the header band is scanned.
type Options struct {
	// MaxRows bounds the scan to the top of the worksheet. Zero means scan
	// every row.
	MaxRows int

	// SameRow requires all codes to resolve on a single header row. Page 19
	// prints its code band on one row; Schedule P spreads codes across the
	// stacked sub-table headers.
	SameRow bool
}

// MissingCodesError reports the required codes that could not be resolved.
type MissingCodesError struct {
	Codes []int
}

func (e *MissingCodesError) Error() string {
	return fmt.Sprintf("column anchor codes not found: %v", e.Codes)
}

// Locate scans the worksheet's header rows for cells whose text is exactly
// one of the required numeric codes and returns the code -> column map.
//
// A code that appears more than once resolves to its first occurrence in
// row order, which keeps classification and extraction deterministic. If
// any required code is absent (or, with SameRow, no single row carries all
// of them), Locate returns a MissingCodesError naming the gaps.
func Locate(rows []ssml.Row, codes []int, opts Options) (Map, error) {
	limit := len(rows)
	if opts.MaxRows > 0 && opts.MaxRows < limit {
		limit = opts.MaxRows
	}

	wanted := make(map[string]int, len(codes))
	for _, c := range codes {
		wanted[strconv.Itoa(c)] = c
	}

	if opts.SameRow {
		for _, row := range rows[:limit] {
			if m := matchRow(row, wanted); len(m) == len(codes) {
				return m, nil
			}
		}
		return nil, &MissingCodesError{Codes: sortedCodes(codes)}
	}

	found := make(Map, len(codes))
	for _, row := range rows[:limit] {
		for _, cell := range row.Cells {
			code, ok := wanted[cell.Data]
			if !ok {
				continue
			}
			if _, seen := found[code]; !seen {
				found[code] = cell.Index
			}
		}
		if len(found) == len(codes) {
			return found, nil
		}
	}

	var missing []int
	for _, c := range codes {
		if _, ok := found[c]; !ok {
			missing = append(missing, c)
		}
	}
	return nil, &MissingCodesError{Codes: sortedCodes(missing)}
}

// matchRow resolves the wanted codes against a single row.
func matchRow(row ssml.Row, wanted map[string]int) Map {
	m := make(Map, len(wanted))
	for _, cell := range row.Cells {
		if code, ok := wanted[cell.Data]; ok {
			if _, seen := m[code]; !seen {
				m[code] = cell.Index
			}
		}
	}
	return m
}

func sortedCodes(codes []int) []int {
	out := append([]int(nil), codes...)
	sort.Ints(out)
	return out
}
