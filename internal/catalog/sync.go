package catalog

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"xactscope/internal/storage"
)

type SyncService struct {
	db     *storage.DB
	source Source
}

func NewSyncService(db *storage.DB, source Source) *SyncService {
	return &SyncService{db: db, source: source}
}

// Sync copies the remote rows into the local snapshot and returns how many
// rows were stored.
func (s *SyncService) Sync(ctx context.Context) (int, error) {
	if s.source.Name() == "snapshot" {
		return 0, errors.New("catalog:sync needs a remote source, CATALOG_SOURCE=snapshot given")
	}

	rows, err := s.source.Rows(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.db.ReplaceCatalogRows(rows); err != nil {
		return 0, err
	}
	meta := map[string]string{
		"catalog.last_sync":        time.Now().UTC().Format(time.RFC3339),
		"catalog.last_sync_source": s.source.Name(),
	}
	for key, value := range meta {
		if err := s.db.SetMetadata(key, value); err != nil {
			log.WithError(err).WithField("key", key).Warn("catalog snapshot stored but sync metadata not updated")
		}
	}
	return len(rows), nil
}
