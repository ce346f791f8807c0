package history

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/plainspeak/internal/model"
)

func TestExportXLSX(t *testing.T) {
	items := []model.HistoryItem{
		{
			ID:             "a",
			Timestamp:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			Type:           model.HistoryTypeText,
			OriginalText:   "Original notice",
			SimplifiedText: "Plain notice.",
			Actions:        []string{"Pay the fee.", "Sign the form."},
		},
	}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, items); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	if f.SheetCount != 1 {
		t.Errorf("Expected 1 sheet, got %d", f.SheetCount)
	}

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(rows))
	}
	if rows[0][2] != "Original" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2025-01-02 03:04:05" || rows[1][3] != "Plain notice." {
		t.Errorf("Unexpected row: %v", rows[1])
	}
	if rows[1][4] != "Pay the fee.\nSign the form." {
		t.Errorf("Unexpected actions cell: %q", rows[1][4])
	}
}
