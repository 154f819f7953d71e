package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportThenXLSXSource(t *testing.T) {
	items := BuildItems(fixtureRows())
	out := filepath.Join(t.TempDir(), "nested", "catalog.xlsx")
	if err := Export(items, "Data Pull", out); err != nil {
		t.Fatal(err)
	}

	src, err := NewXLSXSource(out, "Data Pull")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(items) {
		t.Fatalf("len=%d want %d", len(rows), len(items))
	}
	if rows[1].Description != items[1].Description {
		t.Fatalf("got %q want %q", rows[1].Description, items[1].Description)
	}
}

func TestXLSXSourceFallsBackToFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	data := [][]any{
		{"Category", "Selection", "Description", "Unit"},
		{"cab", "tk", "Toe kick - pre-finished", "LF"},
	}
	for r, row := range data {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	src, err := NewXLSXSource(path, "Data Pull")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Selection != "tk" {
		t.Fatalf("rows=%+v", rows)
	}
}

func TestNewXLSXSourceRequiresPath(t *testing.T) {
	if _, err := NewXLSXSource("", "Data Pull"); err == nil {
		t.Fatal("expected error")
	}
}
