package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

// WriteXLSX writes the record as a workbook with one header row, the
// aggregate row and one row per polygon, mirroring the CSV layout.
func WriteXLSX(path string, rec Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return fmt.Errorf("renaming results sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range csvRows(rec) {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(resultsSheet, cell, &cells); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
