package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/plainspeak/internal/model"
)

const exportSheet = "History"

// ExportXLSX writes items as a single-sheet workbook
func ExportXLSX(w io.Writer, items []model.HistoryItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Rename the default sheet rather than adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	headers := []string{"Time", "Type", "Original", "Simplified", "Actions"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for i, item := range items {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(exportSheet, cell, v)
		}

		write(1, item.Timestamp.Format("2006-01-02 15:04:05"))
		write(2, item.Type)
		write(3, item.OriginalText)
		write(4, item.SimplifiedText)
		write(5, strings.Join(item.Actions, "\n"))
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 20) // time
	_ = f.SetColWidth(exportSheet, "B", "B", 8)  // type
	_ = f.SetColWidth(exportSheet, "C", "D", 60) // texts
	_ = f.SetColWidth(exportSheet, "E", "E", 48) // actions

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
