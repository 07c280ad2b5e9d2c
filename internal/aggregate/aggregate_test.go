package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

func ptr(f float64) *float64 { return &f }

func p19(naic string, year int, state, lob string, gwp float64) types.Page19Record {
	return types.Page19Record{
		Year:        year,
		CompanyName: "Co " + naic,
		NAIC:        naic,
		State:       state,
		Liability:   "AL",
		LOB:         lob,
		GWP:         ptr(gwp),
	}
}

func schedP(naic string, reportYear, accidentYear int, ep float64) types.SchedulePRecord {
	return types.SchedulePRecord{
		ReportYear:   reportYear,
		CompanyName:  "Co " + naic,
		NAIC:         naic,
		LOB:          "AL",
		AccidentYear: accidentYear,
		EP:           ptr(ep),
	}
}

func TestFoldFirstWinsDedup(t *testing.T) {
	c := New()
	c.Fold("a.xml", []types.Page19Record{p19("111", 2023, "OH", "19.4", 100)}, nil, nil, nil)
	c.Fold("b.xml", []types.Page19Record{p19("111", 2023, "OH", "19.4", 999)}, nil, nil, nil)

	records := c.Page19Records()
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, *records[0].GWP)

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, types.EventDuplicateDropped, events[0].Kind)
	assert.Equal(t, "b.xml", events[0].File)
	assert.Contains(t, events[0].Detail, "a.xml")

	assert.Equal(t, 1, c.Summary().DuplicatesDropped)
}

func TestFoldDistinctKeysAllKept(t *testing.T) {
	c := New()
	c.Fold("a.xml", []types.Page19Record{
		p19("111", 2023, "OH", "19.4", 1),
		p19("111", 2023, "OH", "21.2", 2),
		p19("111", 2023, "TX", "19.4", 3),
		p19("111", 2022, "OH", "19.4", 4),
		p19("222", 2023, "OH", "19.4", 5),
	}, nil, nil, nil)

	assert.Len(t, c.Page19Records(), 5)
	assert.Zero(t, c.Summary().DuplicatesDropped)
}

func TestFoldSchedulePNeverDeduplicated(t *testing.T) {
	c := New()
	c.Fold("a.xml", nil, []types.SchedulePRecord{schedP("111", 2023, 2020, 10)}, nil, nil)
	c.Fold("b.xml", nil, []types.SchedulePRecord{schedP("111", 2023, 2020, 10)}, nil, nil)

	assert.Len(t, c.SchedulePRecords(), 2)
	assert.Empty(t, c.Events())
}

func TestFoldFileAccounting(t *testing.T) {
	c := New()
	c.Fold("ok.xml", []types.Page19Record{p19("111", 2023, "OH", "19.4", 1)}, nil, nil, nil)
	c.Fold("empty.xml", nil, nil, nil, nil)
	c.Fold("broken.xml", nil, nil, nil, errors.New("malformed XML"))

	s := c.Summary()
	assert.Equal(t, 1, s.FilesProcessed)
	assert.Equal(t, 1, s.FilesSkipped)
	assert.Equal(t, 1, s.FilesFailed)
	assert.Equal(t, 1, s.Page19Records)
	assert.Equal(t, 0, s.SchedulePRecords)
}

func TestFoldCarriesEventsEvenOnFailure(t *testing.T) {
	c := New()
	ev := types.Event{Kind: types.EventExtractionFailed, File: "broken.xml", Detail: "missing codes"}
	c.Fold("broken.xml", nil, nil, []types.Event{ev}, errors.New("boom"))

	require.Len(t, c.Events(), 1)
	assert.Equal(t, types.EventExtractionFailed, c.Events()[0].Kind)
}

func TestPage19RecordsOutputOrder(t *testing.T) {
	c := New()
	c.Fold("a.xml", []types.Page19Record{
		p19("222", 2023, "OH", "19.4", 0),
		p19("111", 2023, "TX", "19.4", 0),
		p19("111", 2023, "OH", "21.2", 0),
		p19("111", 2022, "OH", "19.4", 0),
		p19("111", 2023, "OH", "19.4", 0),
	}, nil, nil, nil)

	records := c.Page19Records()
	require.Len(t, records, 5)

	// Sorted by (CompanyName, Year, State, Liability, LOB).
	assert.Equal(t, "111", records[0].NAIC)
	assert.Equal(t, 2022, records[0].Year)
	assert.Equal(t, "OH", records[1].State)
	assert.Equal(t, "19.4", records[1].LOB)
	assert.Equal(t, "21.2", records[2].LOB)
	assert.Equal(t, "TX", records[3].State)
	assert.Equal(t, "222", records[4].NAIC)
}

func TestSchedulePRecordsOutputOrder(t *testing.T) {
	c := New()
	c.Fold("a.xml", nil, []types.SchedulePRecord{
		schedP("222", 2023, 2020, 0),
		schedP("111", 2023, 2021, 0),
		schedP("111", 2022, 2022, 0),
		schedP("111", 2023, 2020, 0),
	}, nil, nil)

	records := c.SchedulePRecords()
	require.Len(t, records, 4)

	assert.Equal(t, "111", records[0].NAIC)
	assert.Equal(t, 2022, records[0].ReportYear)
	assert.Equal(t, 2020, records[1].AccidentYear)
	assert.Equal(t, 2021, records[2].AccidentYear)
	assert.Equal(t, "222", records[3].NAIC)
}

func TestSchedulePSortIsStableAcrossFoldOrder(t *testing.T) {
	// Two observations with an identical sort key keep their fold order.
	c := New()
	first := schedP("111", 2023, 2020, 1)
	second := schedP("111", 2023, 2020, 2)
	c.Fold("a.xml", nil, []types.SchedulePRecord{first}, nil, nil)
	c.Fold("b.xml", nil, []types.SchedulePRecord{second}, nil, nil)

	records := c.SchedulePRecords()
	require.Len(t, records, 2)
	assert.Equal(t, 1.0, *records[0].EP)
	assert.Equal(t, 2.0, *records[1].EP)
}
