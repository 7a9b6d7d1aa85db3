package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"campus-waterworks/internal/leakage"
	"campus-waterworks/internal/zone"
)

// BuildLeakageXLSX renders the ranked leakage workbook.
func BuildLeakageXLSX(rates []leakage.Rate, stats *leakage.Stats) ([]byte, error) {
	f := excelize.NewFile()
	ratesSheet := "rates"
	f.SetSheetName("Sheet1", ratesSheet)

	_ = f.SetCellValue(ratesSheet, "A1", "code")
	_ = f.SetCellValue(ratesSheet, "B1", "rate (%)")
	for i, r := range rates {
		row := i + 2
		_ = f.SetCellValue(ratesSheet, fmt.Sprintf("A%d", row), r.Code)
		_ = f.SetCellValue(ratesSheet, fmt.Sprintf("B%d", row), r.Rate)
	}

	if stats != nil {
		summarySheet := "summary"
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		_ = f.SetCellValue(summarySheet, "A1", "meters ranked")
		_ = f.SetCellValue(summarySheet, "B1", stats.Count)
		_ = f.SetCellValue(summarySheet, "A2", "mean rate (%)")
		_ = f.SetCellValue(summarySheet, "B2", stats.Mean)
		_ = f.SetCellValue(summarySheet, "A3", "median rate (%)")
		_ = f.SetCellValue(summarySheet, "B3", stats.Median)
		_ = f.SetCellValue(summarySheet, "A4", "max rate (%)")
		_ = f.SetCellValue(summarySheet, "B4", stats.Max)
		_ = f.SetCellValue(summarySheet, "A5", "min rate (%)")
		_ = f.SetCellValue(summarySheet, "B5", stats.Min)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildZoneMappingXLSX renders the flat (zone, display name) workbook.
func BuildZoneMappingXLSX(entries []zone.Entry) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "zones"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "zone")
	_ = f.SetCellValue(sheet, "B1", "display name")
	for i, e := range entries {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(e.Zone))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.DisplayName)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
