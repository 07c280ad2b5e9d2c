// =============================================================================
// S&P Global Statutory Filing Parser - Schedule P Extraction
// =============================================================================
//
// Schedule P - Part 1 stacks three sub-tables on one worksheet: Premiums
// Earned, Claims Reported, and Losses Incurred, each laid out along the
// accident-year axis and opened by a "Prior" aggregate row. The sub-tables
// are not guaranteed to list the same years in the same order, so rows are
// paired across sub-tables by accident-year key, never by row position.
// A year missing from one sub-table yields a record with nil for that
// sub-table's field rather than a dropped row.
//
// =============================================================================

package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/anchor"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/normalize"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// yearColumn is the logical column carrying the accident-year label.
const yearColumn = 3

// maxAccidentYears bounds each sub-table scan: Schedule P lists at most
// twelve accident years below the "Prior" aggregate row.
const maxAccidentYears = 12

// ScheduleP extracts the accident-year records from a Schedule P worksheet.
//
// The three "Prior" markers locate the sub-table starts (Premiums, Claims,
// Losses, in layout order). Each sub-table is read into a year -> value
// map through its anchored column, and the merged records cover the union
// of the three year sets.
func ScheduleP(ws ssml.Worksheet, report types.ReportType) ([]types.SchedulePRecord, error) {
	meta, err := parseMetadata(ws.Rows)
	if err != nil {
		return nil, err
	}

	anchors, err := anchor.Locate(ws.Rows, anchor.SchedulePCodes, anchor.SchedulePOptions)
	if err != nil {
		return nil, err
	}

	starts := priorMarkerRows(ws.Rows)
	if len(starts) < 3 {
		return nil, fmt.Errorf("found %d of 3 sub-table markers", len(starts))
	}

	ep := subTableValues(ws.Rows, starts, 0, anchors[anchor.CodeSchedPEP])
	claims := subTableValues(ws.Rows, starts, 1, anchors[anchor.CodeSchedPClaims])
	losses := subTableValues(ws.Rows, starts, 2, anchors[anchor.CodeSchedPLosses])

	records := make([]types.SchedulePRecord, 0, len(ep))
	for _, year := range unionYears(ep, claims, losses) {
		records = append(records, types.SchedulePRecord{
			ReportYear:     meta.Year,
			CompanyName:    meta.CompanyName,
			NAIC:           meta.NAIC,
			LOB:            report.LOB,
			AccidentYear:   year,
			EP:             ep[year],
			LossesIncurred: losses[year],
			Claims:         claims[year],
		})
	}
	return records, nil
}

// priorMarkerRows returns the row indices whose accident-year cell carries
// the "Prior" marker, in layout order.
func priorMarkerRows(rows []ssml.Row) []int {
	var starts []int
	for i, row := range rows {
		if strings.Contains(row.Cell(yearColumn), "Prior") {
			starts = append(starts, i)
		}
	}
	return starts
}

// subTableValues reads one sub-table into an accident-year -> value map.
//
// The scan runs from the sub-table's "Prior" marker to the next marker (or
// the twelve-year window for the last sub-table). Rows whose year cell is
// not a plain year, including the "Prior" aggregate itself, are used only
// as layout and never emit values. A repeated year keeps its first value.
func subTableValues(rows []ssml.Row, starts []int, table int, column int) map[int]*float64 {
	start := starts[table]
	end := start + maxAccidentYears + 1
	if table+1 < len(starts) && starts[table+1] < end {
		end = starts[table+1]
	}
	if end > len(rows) {
		end = len(rows)
	}

	values := make(map[int]*float64)
	for _, row := range rows[start:end] {
		year, ok := normalize.Int(row.Cell(yearColumn))
		if !ok {
			continue
		}
		if _, seen := values[year]; seen {
			continue
		}
		values[year] = normalize.Numeric(row.Cell(column))
	}
	return values
}

// unionYears returns the sorted union of the accident years observed in
// the three sub-tables.
func unionYears(maps ...map[int]*float64) []int {
	set := make(map[int]struct{})
	for _, m := range maps {
		for year := range m {
			set[year] = struct{}{}
		}
	}
	years := make([]int, 0, len(set))
	for year := range set {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
