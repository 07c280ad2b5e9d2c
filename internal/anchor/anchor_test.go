package anchor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
)

// row builds a resolved row from logical index -> cell text.
func row(cells map[int]string) ssml.Row {
	var r ssml.Row
	for idx, data := range cells {
		r.Cells = append(r.Cells, ssml.Cell{Index: idx, Data: data})
	}
	return r
}

func TestLocateSameRow(t *testing.T) {
	rows := []ssml.Row{
		row(map[int]string{1: "EXHIBIT OF PREMIUMS AND LOSSES"}),
		row(map[int]string{2: "Line of Business"}),
		row(map[int]string{8: "1", 9: "2", 12: "6", 15: "9"}),
	}

	m, err := Locate(rows, []int{1, 2, 6, 9}, Options{MaxRows: 10, SameRow: true})
	require.NoError(t, err)
	assert.Equal(t, Map{1: 8, 2: 9, 6: 12, 9: 15}, m)
}

func TestLocateAnchorIndependentOfColumnOrder(t *testing.T) {
	// The same codes shuffled into a different physical order resolve to
	// their own positions; nothing depends on column layout.
	shuffled := []ssml.Row{
		row(map[int]string{3: "6", 7: "1", 10: "9", 11: "2"}),
	}

	m, err := Locate(shuffled, []int{1, 2, 6, 9}, Options{SameRow: true})
	require.NoError(t, err)
	assert.Equal(t, Map{6: 3, 1: 7, 9: 10, 2: 11}, m)
}

func TestLocateAcrossRows(t *testing.T) {
	// Schedule P spreads its codes over the stacked sub-table headers.
	rows := []ssml.Row{
		row(map[int]string{4: "1"}),
		row(map[int]string{1: "filler"}),
		row(map[int]string{6: "25"}),
		row(map[int]string{9: "26"}),
	}

	m, err := Locate(rows, []int{1, 25, 26}, Options{MaxRows: 50})
	require.NoError(t, err)
	assert.Equal(t, Map{1: 4, 25: 6, 26: 9}, m)
}

func TestLocateFirstOccurrenceWins(t *testing.T) {
	rows := []ssml.Row{
		row(map[int]string{4: "25"}),
		row(map[int]string{8: "25"}),
		row(map[int]string{2: "1", 3: "26"}),
	}

	m, err := Locate(rows, []int{1, 25, 26}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, m[25])
}

func TestLocateMissingCodes(t *testing.T) {
	rows := []ssml.Row{
		row(map[int]string{2: "1", 3: "25"}),
	}

	_, err := Locate(rows, []int{1, 25, 26}, Options{})
	require.Error(t, err)

	var missing *MissingCodesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []int{26}, missing.Codes)
}

func TestLocateSameRowRejectsSplitCodes(t *testing.T) {
	// All codes present, but never together on one row.
	rows := []ssml.Row{
		row(map[int]string{2: "1", 3: "2"}),
		row(map[int]string{4: "6", 5: "9"}),
	}

	_, err := Locate(rows, []int{1, 2, 6, 9}, Options{SameRow: true})
	require.Error(t, err)
}

func TestLocateHonorsMaxRows(t *testing.T) {
	rows := []ssml.Row{
		row(map[int]string{1: "header"}),
		row(map[int]string{2: "1", 3: "25", 4: "26"}),
	}

	_, err := Locate(rows, []int{1, 25, 26}, Options{MaxRows: 1})
	require.Error(t, err)

	m, err := Locate(rows, []int{1, 25, 26}, Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Len(t, m, 3)
}

func TestLocateExactTokenMatch(t *testing.T) {
	// "10" and "1.0" must not satisfy code 1.
	rows := []ssml.Row{
		row(map[int]string{2: "10", 3: "1.0"}),
	}

	_, err := Locate(rows, []int{1}, Options{})
	require.Error(t, err)
}
