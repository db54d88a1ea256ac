package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestXLSXWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.xlsx")

	if err := NewXLSXWriter(path).Write(context.Background(), Rows(samplePolicy())); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "tokenId" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "p1466f78" || rows[1][1] != "Fox #1" || rows[1][6] != "5" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][5] != "ABC" {
		t.Errorf("row 2 ticker = %v", rows[2])
	}
}

func TestXLSXWriterBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "policy.xlsx")

	if err := NewXLSXWriter(path).Write(context.Background(), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
