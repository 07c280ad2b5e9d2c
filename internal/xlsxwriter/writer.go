// =============================================================================
// S&P Global Statutory Filing Parser - Workbook Writer
// =============================================================================
//
// This module writes the two consolidated master collections to a single
// XLSX workbook, one sheet per report format, with the fixed column orders
// the downstream spreadsheet consumers expect. Missing numeric values are
// written as blank cells, never as zero.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jakemendlovic/SP-Global-Parsing/internal/types"
)

// Sheet names in the output workbook.
const (
	Page19Sheet    = "Page 19 Data"
	SchedulePSheet = "Schedule P Data"
)

var page19Headers = []interface{}{
	"YEAR", "COMPANY_NAME", "NAIC", "STATE", "LIABILITY", "LOB",
	"GWP", "EP", "LOSSES_INCURRED", "DIRECT_LOSSES_INC", "DCC",
}

var schedPHeaders = []interface{}{
	"REPORT_YEAR", "COMPANY_NAME", "NAIC", "LOB", "YEAR",
	"EP", "LOSSES_INC", "CLAIMS",
}

// Write creates the output workbook at the given path. Both sheets are
// written even when empty so the output shape is stable across runs.
func Write(path string, page19 []types.Page19Record, schedP []types.SchedulePRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writePage19(f, page19); err != nil {
		return err
	}
	if err := writeScheduleP(f, schedP); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writePage19 fills the Page 19 sheet.
func writePage19(f *excelize.File, records []types.Page19Record) error {
	if _, err := f.NewSheet(Page19Sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", Page19Sheet, err)
	}
	if err := f.SetSheetRow(Page19Sheet, "A1", &page19Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range records {
		row := []interface{}{
			rec.Year, rec.CompanyName, rec.NAIC, rec.State, rec.Liability, rec.LOB,
			cell(rec.GWP), cell(rec.EP), cell(rec.LossesIncurred),
			cell(rec.DirectLossesIncurred), cell(rec.DCC),
		}
		if err := f.SetSheetRow(Page19Sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// writeScheduleP fills the Schedule P sheet.
func writeScheduleP(f *excelize.File, records []types.SchedulePRecord) error {
	if _, err := f.NewSheet(SchedulePSheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", SchedulePSheet, err)
	}
	if err := f.SetSheetRow(SchedulePSheet, "A1", &schedPHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range records {
		row := []interface{}{
			rec.ReportYear, rec.CompanyName, rec.NAIC, rec.LOB, rec.AccidentYear,
			cell(rec.EP), cell(rec.LossesIncurred), cell(rec.Claims),
		}
		if err := f.SetSheetRow(SchedulePSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

// cell converts a nullable value for excelize: nil stays a blank cell so
// missing remains distinguishable from zero in the output.
func cell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
