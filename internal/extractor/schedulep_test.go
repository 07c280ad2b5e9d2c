package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

const schedPTitle = "ANNUAL STATEMENT FOR THE YEAR 2023 OF THE Acme Insurance Co (NAIC #12345)"

func schedPReport(lob string) types.ReportType {
	return types.ReportType{Kind: types.ScheduleP, LOB: lob}
}

func TestSchedulePMergesSubTablesByAccidentYear(t *testing.T) {
	// The three sub-tables disagree on which accident years they list:
	// Premiums has 2020+2021, Claims has 2021+2022, Losses only 2021. The
	// merge must cover the union with nil for whatever a sub-table lacks.
	ws := ssml.Worksheet{Name: "SCHP", Rows: []ssml.Row{
		titleRow(schedPTitle),
		row(map[int]string{1: "SCHEDULE P - PART 1"}),
		row(map[int]string{1: "SCHEDULE P - COMMERCIAL AUTO LIABILITY"}),
		row(map[int]string{6: "1"}),
		row(map[int]string{3: "Prior", 6: "999"}),
		row(map[int]string{3: "2020", 6: "100"}),
		row(map[int]string{3: "2021", 6: "110"}),
		row(map[int]string{8: "25"}),
		row(map[int]string{3: "Prior", 8: "888"}),
		row(map[int]string{3: "2021", 8: "5"}),
		row(map[int]string{3: "2022", 8: "7"}),
		row(map[int]string{10: "26"}),
		row(map[int]string{3: "Prior", 10: "777"}),
		row(map[int]string{3: "2021", 10: "60"}),
	}}

	records, err := ScheduleP(ws, schedPReport("AL"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.Equal(t, 2023, r.ReportYear)
		assert.Equal(t, "Acme Insurance Co", r.CompanyName)
		assert.Equal(t, "12345", r.NAIC)
		assert.Equal(t, "AL", r.LOB)
	}

	assert.Equal(t, 2020, records[0].AccidentYear)
	assert.Equal(t, 100.0, *records[0].EP)
	assert.Nil(t, records[0].Claims)
	assert.Nil(t, records[0].LossesIncurred)

	assert.Equal(t, 2021, records[1].AccidentYear)
	assert.Equal(t, 110.0, *records[1].EP)
	assert.Equal(t, 5.0, *records[1].Claims)
	assert.Equal(t, 60.0, *records[1].LossesIncurred)

	assert.Equal(t, 2022, records[2].AccidentYear)
	assert.Nil(t, records[2].EP)
	assert.Equal(t, 7.0, *records[2].Claims)
	assert.Nil(t, records[2].LossesIncurred)
}

func TestSchedulePPriorRowsEmitNoRecords(t *testing.T) {
	// The "Prior" aggregates carry values but no plain accident year; they
	// locate the sub-tables and nothing else.
	ws := ssml.Worksheet{Name: "SCHP", Rows: []ssml.Row{
		titleRow(schedPTitle),
		row(map[int]string{6: "1"}),
		row(map[int]string{3: "Prior", 6: "999"}),
		row(map[int]string{3: "2022", 6: "100"}),
		row(map[int]string{8: "25"}),
		row(map[int]string{3: "Prior", 8: "888"}),
		row(map[int]string{3: "2022", 8: "5"}),
		row(map[int]string{10: "26"}),
		row(map[int]string{3: "Prior", 10: "777"}),
		row(map[int]string{3: "2022", 10: "60"}),
	}}

	records, err := ScheduleP(ws, schedPReport("AL"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2022, records[0].AccidentYear)
}

func TestSchedulePRepeatedYearKeepsFirstValue(t *testing.T) {
	ws := ssml.Worksheet{Name: "SCHP", Rows: []ssml.Row{
		titleRow(schedPTitle),
		row(map[int]string{6: "1"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "2022", 6: "100"}),
		row(map[int]string{3: "2022", 6: "200"}),
		row(map[int]string{8: "25"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "2022", 8: "5"}),
		row(map[int]string{10: "26"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "2022", 10: "60"}),
	}}

	records, err := ScheduleP(ws, schedPReport("APD"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, *records[0].EP)
}

func TestSchedulePRequiresThreeSubTables(t *testing.T) {
	ws := ssml.Worksheet{Name: "SCHP", Rows: []ssml.Row{
		titleRow(schedPTitle),
		row(map[int]string{6: "1", 8: "25", 10: "26"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "2022", 6: "100"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "2022", 8: "5"}),
	}}

	_, err := ScheduleP(ws, schedPReport("AL"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sub-table markers")
}

func TestSchedulePAnchorsRequired(t *testing.T) {
	ws := ssml.Worksheet{Name: "SCHP", Rows: []ssml.Row{
		titleRow(schedPTitle),
		row(map[int]string{6: "1"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "Prior"}),
		row(map[int]string{3: "Prior"}),
	}}

	_, err := ScheduleP(ws, schedPReport("AL"))
	require.Error(t, err)
}
