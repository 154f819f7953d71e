package catalog

import (
	"context"
	"errors"

	"xactscope/internal"
	"xactscope/internal/storage"
)

// SnapshotSource serves the rows stored by the last catalog:sync.
type SnapshotSource struct {
	db *storage.DB
}

func NewSnapshotSource(db *storage.DB) *SnapshotSource {
	return &SnapshotSource{db: db}
}

func (s *SnapshotSource) Name() string {
	return "snapshot"
}

func (s *SnapshotSource) Rows(ctx context.Context) ([]internal.CatalogRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.ListCatalogRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("catalog snapshot is empty, run catalog:sync first")
	}
	return rows, nil
}
