package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Quote"

var xlsxHeader = []interface{}{
	"ID", "Model", "Colour", "Scale (%)", "Length (mm)", "Width (mm)", "Height (mm)",
	"Layers", "Minutes", "Cost",
}

// ExportXLSX writes the quote as a workbook with one row per model and a
// totals row.
func ExportXLSX(path string, q Quote) error {
	if len(q.Lines) == 0 {
		return ErrEmptyQuote
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := make([][]interface{}, 0, len(q.Lines)+2)
	rows = append(rows, xlsxHeader)
	for _, l := range q.Lines {
		rows = append(rows, []interface{}{
			l.ModelID, l.Name, l.Color, l.Scale, l.Length, l.Width, l.Height,
			l.Layers, l.Minutes, l.Cost,
		})
	}
	rows = append(rows, []interface{}{
		"Total", fmt.Sprintf("%d models", len(q.Lines)), "", "", "", "", "",
		"", q.TotalMinutes, q.TotalCost,
	})

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to create cell reference: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
