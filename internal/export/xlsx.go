package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes tabs as worksheets of one workbook, with a bold frozen header.
func WriteXLSX(w io.Writer, tabs []Tab) error {
	if len(tabs) == 0 {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, tab := range tabs {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, tab.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", tab.Name, err)
			}
		} else if _, err := f.NewSheet(tab.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", tab.Name, err)
		}

		for r, row := range tab.Values() {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(tab.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", tab.Name, r+1, err)
			}
		}

		if err := f.SetRowStyle(tab.Name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s header: %w", tab.Name, err)
		}
		if err := f.SetPanes(tab.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze %s header: %w", tab.Name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
