package catalog

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"xactscope/internal"
	"xactscope/internal/storage"
)

type staticSource struct {
	name string
	rows []internal.CatalogRow
	err  error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Rows(context.Context) ([]internal.CatalogRow, error) {
	return s.rows, s.err
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSyncThenLoadSnapshot(t *testing.T) {
	db := openTestDB(t)

	if _, err := Load(context.Background(), NewSnapshotSource(db)); err == nil {
		t.Fatal("expected error for empty snapshot")
	}

	svc := NewSyncService(db, staticSource{name: "sheets", rows: fixtureRows()})
	count, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != len(fixtureRows()) {
		t.Fatalf("count=%d", count)
	}

	last, err := db.GetMetadata("catalog.last_sync_source")
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || *last != "sheets" {
		t.Fatalf("last_sync_source=%v", last)
	}

	c, err := Load(context.Background(), NewSnapshotSource(db))
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Fatalf("len=%d", c.Len())
	}
}

func TestSyncRejectsSnapshotSource(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewSyncService(db, NewSnapshotSource(db)).Sync(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSyncKeepsSnapshotOnSourceError(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewSyncService(db, staticSource{name: "sheets", rows: fixtureRows()}).Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("network down")
	_, err := NewSyncService(db, staticSource{name: "sheets", err: boom}).Sync(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}

	rows, err := db.ListCatalogRows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(fixtureRows()) {
		t.Fatalf("snapshot lost: len=%d", len(rows))
	}
}

func TestSyncWarnsWhenMetadataFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	if _, err := raw.Exec(`DROP TABLE metadata`); err != nil {
		t.Fatal(err)
	}

	hook := logtest.NewGlobal()
	defer hook.Reset()

	count, err := NewSyncService(db, staticSource{name: "sheets", rows: fixtureRows()}).Sync(context.Background())
	if err != nil {
		t.Fatalf("sync should keep the stored snapshot: %v", err)
	}
	if count != len(fixtureRows()) {
		t.Fatalf("count=%d", count)
	}

	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("warnings=%d", warnings)
	}
}
