// =============================================================================
// S&P Global Statutory Filing Parser - Aggregator / Deduplicator
// =============================================================================
//
// This module folds per-file extraction results into the two master record
// collections handed to the workbook writer at the end of the batch.
//
// DETERMINISM:
//   Results are folded in lexicographic file order by the caller, so the
//   collections are reproducible across runs on identical input sets.
//   Page 19 duplicates collapse first-wins in that fold order; Schedule P
//   rows are concatenated as-is, then stable-sorted by
//   (NAIC, ReportYear, AccidentYear).
//
// OBSERVABILITY:
//   Every skip, failure, and duplicate drop is collected as an event and
//   counted in the final summary, so silent data loss cannot go unnoticed.
//
// =============================================================================

package aggregate

import (
	"fmt"
	"sort"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// =============================================================================
// COLLECTOR
// =============================================================================

// Collector accumulates records and events across the batch. It is not
// safe for concurrent use: per-file pipelines run in parallel, but the fold
// is the single serialization point.
type Collector struct {
	page19 []types.Page19Record
	schedP []types.SchedulePRecord

	// seen maps a Page 19 uniqueness key to the file that first produced
	// it, for duplicate-dropped event context.
	seen map[types.Page19Key]string

	events []types.Event

	processed int
	skipped   int
	failed    int
	dropped   int
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{seen: make(map[types.Page19Key]string)}
}

// Fold merges one file's outcome into the master collections. Call it in
// lexicographic file order.
//
// A file with a load error counts as failed; a file that produced no
// records counts as skipped; anything else counts as processed. Page 19
// records colliding with an already-collected key are discarded
// (first-wins) and reported as duplicate-dropped events.
func (c *Collector) Fold(file string, p19 []types.Page19Record, schedP []types.SchedulePRecord, events []types.Event, err error) {
	c.events = append(c.events, events...)

	switch {
	case err != nil:
		c.failed++
		return
	case len(p19) == 0 && len(schedP) == 0:
		c.skipped++
	default:
		c.processed++
	}

	for _, rec := range p19 {
		key := rec.Key()
		if first, dup := c.seen[key]; dup {
			c.dropped++
			c.events = append(c.events, types.Event{
				Kind:   types.EventDuplicateDropped,
				File:   file,
				Report: types.Page19,
				Detail: fmt.Sprintf("%s first seen in %s", key, first),
			})
			continue
		}
		c.seen[key] = file
		c.page19 = append(c.page19, rec)
	}

	c.schedP = append(c.schedP, schedP...)
}

// =============================================================================
// FINAL COLLECTIONS
// =============================================================================

// Page19Records returns the deduplicated Page 19 collection in its output
// order: (CompanyName, Year, State, Liability, LOB).
func (c *Collector) Page19Records() []types.Page19Record {
	out := append([]types.Page19Record(nil), c.page19...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CompanyName != b.CompanyName {
			return a.CompanyName < b.CompanyName
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Liability != b.Liability {
			return a.Liability < b.Liability
		}
		return a.LOB < b.LOB
	})
	return out
}

// SchedulePRecords returns the Schedule P collection stable-sorted by
// (NAIC, ReportYear, AccidentYear). Duplicates across files are preserved
// as distinct observations; the stable sort keeps them in fold order.
func (c *Collector) SchedulePRecords() []types.SchedulePRecord {
	out := append([]types.SchedulePRecord(nil), c.schedP...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.NAIC != b.NAIC {
			return a.NAIC < b.NAIC
		}
		if a.ReportYear != b.ReportYear {
			return a.ReportYear < b.ReportYear
		}
		return a.AccidentYear < b.AccidentYear
	})
	return out
}

// Events returns every collected event in fold order.
func (c *Collector) Events() []types.Event {
	return c.events
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the end-of-batch accounting reported to the user.
type Summary struct {
	FilesProcessed    int
	FilesSkipped      int
	FilesFailed       int
	Page19Records     int
	SchedulePRecords  int
	DuplicatesDropped int
}

// Summary returns the batch counts.
func (c *Collector) Summary() Summary {
	return Summary{
		FilesProcessed:    c.processed,
		FilesSkipped:      c.skipped,
		FilesFailed:       c.failed,
		Page19Records:     len(c.page19),
		SchedulePRecords:  len(c.schedP),
		DuplicatesDropped: c.dropped,
	}
}
