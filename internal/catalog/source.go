package catalog

import (
	"context"
	"fmt"

	"xactscope/internal"
	"xactscope/internal/config"
	"xactscope/internal/storage"
)

// Source yields the raw catalog rows. Rows are read once per process.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]internal.CatalogRow, error)
}

func NewSource(ctx context.Context, cfg config.Config, db *storage.DB) (Source, error) {
	switch cfg.CatalogSource {
	case "", "sheets":
		return NewSheetsSource(ctx, cfg)
	case "csv":
		return NewCSVSource(cfg)
	case "xlsx":
		return NewXLSXSource(cfg.CatalogXLSXPath, cfg.SheetTab)
	case "snapshot":
		return NewSnapshotSource(db), nil
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.CatalogSource)
	}
}

// Load reads src and builds the catalog served for the process lifetime.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}
	return NewCatalog(BuildItems(rows)), nil
}
