// =============================================================================
// S&P Global Statutory Filing Parser - Report Classifier
// =============================================================================
//
// This module decides which statutory report format a worksheet carries:
// Page 19 (Exhibit of Premiums and Losses), Schedule P - Part 1, or
// Unknown. Unknown is a skip, not an error.
//
// CLASSIFICATION STRATEGY:
//   Title keywords alone are brittle across filing vintages, so each format
//   is fingerprinted two ways and both signals are consulted:
//
//   Page 19    - title keyword in the top rows, corroborated by the numeric
//                anchor row (codes 1/2/6/9 on a single header row).
//   Schedule P - title keyword, corroborated by the three stacked "Prior"
//                sub-table markers that only Schedule P has.
//
//   A worksheet classifies when its structural fingerprint is present and
//   either the title or the format's secondary marker confirms it. The
//   same worksheet always classifies the same way: the checks read the
//   sheet top-down with no order dependence on map iteration.
//
// =============================================================================

package classifier

import (
	"strings"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/anchor"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// Title keywords as printed by the export system.
const (
	titlePage19    = "EXHIBIT OF PREMIUMS AND LOSSES"
	titleScheduleP = "SCHEDULE P - PART 1"
)

// stateMarker introduces the state-scope line on a Page 19 worksheet.
const stateMarker = "DIRECT BUSINESS IN THE STATE OF"

// titleScanRows bounds the keyword search to the header band.
const titleScanRows = 5

// priorLabel marks the first row of each Schedule P sub-table.
const priorLabel = "Prior"

// subTableCount is the number of aligned Schedule P sub-tables
// (Premiums, Claims, Losses).
const subTableCount = 3

// Classify inspects a worksheet's structural fingerprint and returns its
// report type. Page 19 results carry the state scope; Schedule P results
// carry the line of business (empty for summary/other sheets, which the
// caller skips).
func Classify(ws ssml.Worksheet) types.ReportType {
	hasP19Title, hasSPTitle := scanTitles(ws.Rows)

	// Page 19: the single-table layout with the one-row numeric code band.
	if _, err := anchor.Locate(ws.Rows, anchor.Page19Codes, anchor.Page19Options); err == nil {
		if hasP19Title || hasStateMarker(ws.Rows) {
			return types.ReportType{Kind: types.Page19, State: stateScope(ws.Rows)}
		}
	}

	// Schedule P: three aligned sub-tables along the accident-year axis.
	if countPriorMarkers(ws.Rows) >= subTableCount {
		if hasSPTitle || schedPAnchorsResolve(ws.Rows) {
			return types.ReportType{Kind: types.ScheduleP, LOB: lineOfBusiness(ws)}
		}
	}

	return types.ReportType{Kind: types.Unknown}
}

// =============================================================================
// FINGERPRINT CHECKS
// =============================================================================

// scanTitles looks for the format title keywords in the first cells of the
// top rows.
func scanTitles(rows []ssml.Row) (page19, schedP bool) {
	for _, row := range topRows(rows, titleScanRows) {
		for col := 1; col <= 4; col++ {
			text := strings.ToUpper(row.Cell(col))
			if text == "" {
				continue
			}
			if strings.Contains(text, titlePage19) {
				page19 = true
			}
			if strings.Contains(text, titleScheduleP) {
				schedP = true
			}
		}
	}
	return page19, schedP
}

// hasStateMarker reports whether the Page 19 state-scope line is present.
func hasStateMarker(rows []ssml.Row) bool {
	for _, row := range topRows(rows, titleScanRows) {
		if strings.Contains(strings.ToUpper(row.Cell(2)), stateMarker) {
			return true
		}
	}
	return false
}

// countPriorMarkers counts rows whose accident-year label cell carries the
// "Prior" aggregate marker. Each Schedule P sub-table starts with one.
func countPriorMarkers(rows []ssml.Row) int {
	count := 0
	for _, row := range rows {
		if strings.Contains(row.Cell(3), priorLabel) {
			count++
		}
	}
	return count
}

// schedPAnchorsResolve reports whether the Schedule P code set resolves,
// used as the structural corroboration when the title text has drifted.
func schedPAnchorsResolve(rows []ssml.Row) bool {
	_, err := anchor.Locate(rows, anchor.SchedulePCodes, anchor.SchedulePOptions)
	return err == nil
}

// =============================================================================
// CLASSIFICATION PAYLOAD
// =============================================================================

// stateScope derives the Page 19 scope from the worksheet's own header:
// GRAND_TOTAL unless the state-scope line names a state.
func stateScope(rows []ssml.Row) string {
	for _, row := range topRows(rows, titleScanRows) {
		if !strings.Contains(strings.ToUpper(row.Cell(2)), stateMarker) {
			continue
		}
		// The state value sits in one of the cells to the right of the
		// marker; its exact column drifts between vintages.
		for col := 3; col <= 9; col++ {
			value := strings.ToUpper(row.Cell(col))
			if value == "" {
				continue
			}
			if strings.Contains(value, "GRAND TOTAL") {
				return types.GrandTotal
			}
			return value
		}
		break
	}
	return types.GrandTotal
}

// lineOfBusiness identifies the Schedule P line of business: "AL"
// (commercial auto liability), "APD" (auto physical damage), or "" for
// summary and other sheets that are not extracted.
func lineOfBusiness(ws ssml.Worksheet) string {
	// The LOB is printed in the third row's first cell.
	if len(ws.Rows) >= 3 {
		header := strings.ToUpper(ws.Rows[2].Cell(1))
		switch {
		case strings.Contains(header, "COMMERCIAL AUTO LIABILITY"):
			return "AL"
		case strings.Contains(header, "AUTO PHYSICAL DAMAGE"):
			return "APD"
		case strings.Contains(header, "SUMMARY"):
			return ""
		}
	}

	// Fallback to the sheet tab name.
	name := strings.ToUpper(ws.Name)
	switch {
	case strings.Contains(name, "COMM'L AUTO L"):
		return "AL"
	case strings.Contains(name, "AUTO PHYS"):
		return "APD"
	}
	return ""
}

// topRows returns at most n leading rows.
func topRows(rows []ssml.Row, n int) []ssml.Row {
	if len(rows) < n {
		return rows
	}
	return rows[:n]
}
