// =============================================================================
// S&P Global Statutory Filing Parser - Page 19 Extraction
// =============================================================================
//
// Page 19 (Exhibit of Premiums and Losses) is a single flat table: one row
// per line of business, premium and loss columns anchored by the numeric
// header codes 1/2/6/9. Every extracted row is tagged with the worksheet's
// state scope (GRAND_TOTAL or a state code), which the classifier derived
// from the sheet's own header.
//
// =============================================================================

package extractor

import (
	"math"
	"strconv"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/anchor"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/normalize"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// lobColumn is the logical column carrying the line-of-business label.
const lobColumn = 2

// page19LOBs maps the extracted line-of-business codes to their liability
// category. Only commercial auto lines are pulled from the exhibit.
var page19LOBs = []struct {
	code      float64
	label     string
	liability string
}{
	{19.3, "19.3", "AL"},
	{19.4, "19.4", "AL"},
	{21.2, "21.2", "APD"},
}

// Page19 extracts the commercial auto rows from a Page 19 worksheet.
//
// The column anchor map is resolved once; each matched row's values are
// then read by index. The 19.3 line prints its label one row above its
// values, so that line reads from the following row.
func Page19(ws ssml.Worksheet, report types.ReportType) ([]types.Page19Record, error) {
	meta, err := parseMetadata(ws.Rows)
	if err != nil {
		return nil, err
	}

	anchors, err := anchor.Locate(ws.Rows, anchor.Page19Codes, anchor.Page19Options)
	if err != nil {
		return nil, err
	}

	var records []types.Page19Record
	for i, row := range ws.Rows {
		label := row.Cell(lobColumn)
		if label == "" {
			continue
		}
		lob, liability, ok := matchLOB(label)
		if !ok {
			continue
		}

		dataRow := row
		if lob == "19.3" && i+1 < len(ws.Rows) {
			dataRow = ws.Rows[i+1]
		}

		direct := normalize.Numeric(dataRow.Cell(anchors[anchor.CodePage19Losses]))
		dcc := normalize.Numeric(dataRow.Cell(anchors[anchor.CodePage19DCC]))

		records = append(records, types.Page19Record{
			Year:                 meta.Year,
			CompanyName:          meta.CompanyName,
			NAIC:                 meta.NAIC,
			State:                report.State,
			Liability:            liability,
			LOB:                  lob,
			GWP:                  normalize.Numeric(dataRow.Cell(anchors[anchor.CodePage19GWP])),
			EP:                   normalize.Numeric(dataRow.Cell(anchors[anchor.CodePage19EP])),
			LossesIncurred:       normalize.SumNullable(direct, dcc),
			DirectLossesIncurred: direct,
			DCC:                  dcc,
		})
	}
	return records, nil
}

// matchLOB parses a label cell as a line-of-business code and looks it up
// in the extraction table. Codes are compared at one decimal place because
// the export sometimes pads them ("19.30").
func matchLOB(label string) (lob, liability string, ok bool) {
	f, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return "", "", false
	}
	rounded := math.Round(f*10) / 10
	for _, l := range page19LOBs {
		if l.code == rounded {
			return l.label, l.liability, true
		}
	}
	return "", "", false
}
