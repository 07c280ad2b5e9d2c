// =============================================================================
// S&P Global Statutory Filing Parser - Row Extractor
// =============================================================================
//
// This module walks the data rows of a classified worksheet and pulls the
// anchored field values into raw records. All value reads are index-driven
// through the column anchor map; the surrounding label text is never
// consulted, so label drift between filing vintages cannot move the data.
//
// Per-format record-shape logic lives in page19.go and schedulep.go. This
// file holds what both formats share: the worksheet title metadata.
//
// =============================================================================

package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/ssml"
)

// titleRe matches the worksheet title line, e.g.
//
//	"ANNUAL STATEMENT FOR THE YEAR 2023 OF THE Example Insurance Co (NAIC #12345)"
//
// capturing the filing year, company name, and optional NAIC code.
var titleRe = regexp.MustCompile(`(\d{4}) OF THE (.*?) ?(?:\(NAIC #(\S+)\))?$`)

// Metadata is the filing identity shared by every record extracted from a
// worksheet.
type Metadata struct {
	Year        int
	CompanyName string
	NAIC        string
}

// parseMetadata reads the filing identity from the worksheet's title row.
// A worksheet whose title does not match is malformed: extraction for it
// fails locally and the batch continues.
func parseMetadata(rows []ssml.Row) (Metadata, error) {
	if len(rows) == 0 {
		return Metadata{}, fmt.Errorf("worksheet has no rows")
	}
	title := rows[0].Cell(2)
	if title == "" {
		return Metadata{}, fmt.Errorf("worksheet has no title cell")
	}

	m := titleRe.FindStringSubmatch(title)
	if m == nil {
		return Metadata{}, fmt.Errorf("unrecognized title %q", title)
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Metadata{}, fmt.Errorf("invalid year in title %q", title)
	}

	naic := strings.TrimSuffix(m[3], ")")
	if naic == "" {
		naic = "N/A"
	}

	return Metadata{
		Year:        year,
		CompanyName: strings.TrimSpace(m[2]),
		NAIC:        naic,
	}, nil
}
