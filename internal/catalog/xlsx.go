package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"xactscope/internal"
)

// XLSXSource reads a downloaded copy of the catalog workbook.
type XLSXSource struct {
	path  string
	sheet string
}

func NewXLSXSource(path, sheet string) (*XLSXSource, error) {
	if path == "" {
		return nil, fmt.Errorf("missing required env var: CATALOG_XLSX_PATH")
	}
	return &XLSXSource{path: path, sheet: sheet}, nil
}

func (s *XLSXSource) Name() string {
	return "xlsx"
}

func (s *XLSXSource) Rows(ctx context.Context) ([]internal.CatalogRow, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := s.sheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 || sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return RowsFromTable(rows)
}

// Export writes items as a workbook XLSXSource can read back.
func Export(items []internal.CatalogItem, sheetName, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheetName != "" && sheetName != sheet {
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			return err
		}
		sheet = sheetName
	}

	headers := []string{"Category", "Selection", "Description", "Unit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, item.Category)
		set(2, item.Selection)
		set(3, item.Description)
		set(4, item.Unit)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
