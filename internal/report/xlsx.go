package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"cryptolens/internal/market"
)

// writeMetricsWorkbook writes the metrics as a one-sheet Excel workbook so
// the report opens directly in a spreadsheet.
func writeMetricsWorkbook(path, symbol string, m market.Metrics) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Metrics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename workbook sheet: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", "metric"); err != nil {
		return fmt.Errorf("write workbook header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", symbol); err != nil {
		return fmt.Errorf("write workbook header: %w", err)
	}

	for i, row := range m.Rows() {
		cellA, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("workbook cell name: %w", err)
		}
		cellB, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			return fmt.Errorf("workbook cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cellA, row.Name); err != nil {
			return fmt.Errorf("write metric %s: %w", row.Name, err)
		}
		if err := f.SetCellValue(sheet, cellB, row.Value); err != nil {
			return fmt.Errorf("write metric %s: %w", row.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
