// =============================================================================
// S&P Global Statutory Filing Parser - SpreadsheetML Loader
// =============================================================================
//
// This module parses the raw bytes of a statutory filing export into a
// navigable workbook tree. The upstream export system emits SpreadsheetML
// (the Excel 2003 XML format, namespace
// urn:schemas-microsoft-com:office:spreadsheet), where a workbook contains
// worksheets, worksheets contain rows, and rows contain cells.
//
// CELL INDEXING:
//   SpreadsheetML omits empty cells. A cell may carry an ss:Index attribute
//   that jumps the logical column position forward, so the physical position
//   of a <Cell> element is meaningless. The loader resolves every cell to
//   its logical 1-based column index once, at parse time; all downstream
//   lookups are by logical index.
//
// ENCODING:
//   Exports arrive with assorted declared encodings (UTF-8, UTF-16,
//   windows-1252). The decoder uses charset.NewReaderLabel so a non-UTF-8
//   declaration does not fail the file.
//
// =============================================================================

package ssml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the SpreadsheetML namespace used by the export system.
const Namespace = "urn:schemas-microsoft-com:office:spreadsheet"

// =============================================================================
// WORKBOOK TREE
// =============================================================================

// Workbook is the parsed, read-only view of one input file. It is scoped to
// the lifetime of processing that file.
type Workbook struct {
	// Worksheets are the sheets in document order.
	Worksheets []Worksheet
}

// Worksheet is a single named sheet.
type Worksheet struct {
	// Name is the ss:Name attribute of the sheet.
	Name string

	// Rows are the sheet's rows in document order, with cell indices
	// already resolved.
	Rows []Row
}

// Row is a single row with logically indexed cells.
type Row struct {
	// Cells holds the non-empty cells of the row. Cell.Index is the
	// resolved logical column index (1-based).
	Cells []Cell
}

// Cell is a single non-empty cell.
type Cell struct {
	// Index is the resolved logical 1-based column index.
	Index int

	// Data is the trimmed text content of the cell.
	Data string
}

// Cell returns the text of the cell at the given logical column index, or
// "" if the row has no cell there. This mirrors how every anchor-driven
// read works: by logical index, never by physical position.
func (r Row) Cell(index int) string {
	for _, c := range r.Cells {
		if c.Index == index {
			return c.Data
		}
	}
	return ""
}

// =============================================================================
// RAW XML SHAPES
// =============================================================================
// These mirror the wire format; they are converted into the resolved tree
// and never leave this package.

type xmlWorkbook struct {
	Worksheets []xmlWorksheet `xml:"Worksheet"`
}

type xmlWorksheet struct {
	Name  string   `xml:"urn:schemas-microsoft-com:office:spreadsheet Name,attr"`
	Table xmlTable `xml:"Table"`
}

type xmlTable struct {
	Rows []xmlRow `xml:"Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	Index int    `xml:"urn:schemas-microsoft-com:office:spreadsheet Index,attr"`
	Data  string `xml:"Data"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFile reads and parses a SpreadsheetML file from disk.
func ParseFile(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	wb, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return wb, nil
}

// Parse decodes SpreadsheetML from a reader into a resolved workbook tree.
//
// The decoder is deliberately lenient: unknown elements and attributes are
// ignored, and non-UTF-8 declared encodings are converted. Malformed XML
// still returns an error, which callers treat as an unreadable file (the
// file is skipped, the batch continues).
func Parse(r io.Reader) (*Workbook, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var raw xmlWorkbook
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}

	wb := &Workbook{Worksheets: make([]Worksheet, 0, len(raw.Worksheets))}
	for _, ws := range raw.Worksheets {
		wb.Worksheets = append(wb.Worksheets, Worksheet{
			Name: ws.Name,
			Rows: resolveRows(ws.Table.Rows),
		})
	}
	return wb, nil
}

// resolveRows converts raw rows into rows with resolved logical indices.
//
// The logical position starts at 1 and advances by one per cell; an
// ss:Index attribute jumps it to the attribute's value before the cell is
// placed.
func resolveRows(raw []xmlRow) []Row {
	rows := make([]Row, len(raw))
	for i, rr := range raw {
		current := 1
		for _, rc := range rr.Cells {
			if rc.Index > 0 {
				current = rc.Index
			}
			data := strings.TrimSpace(rc.Data)
			if data != "" {
				rows[i].Cells = append(rows[i].Cells, Cell{Index: current, Data: data})
			}
			current++
		}
	}
	return rows
}
