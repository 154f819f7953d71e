package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"xactscope/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS catalog_rows (
  rowNo INTEGER PRIMARY KEY,
  category TEXT NOT NULL,
  selection TEXT NOT NULL,
  description TEXT NOT NULL,
  unit TEXT NOT NULL,
  syncedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS lookups (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  input TEXT NOT NULL,
  quantity TEXT NOT NULL,
  action TEXT NOT NULL,
  status TEXT NOT NULL,
  matches INTEGER NOT NULL,
  related INTEGER NOT NULL,
  durationMs REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_lookups_status ON lookups(status);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceCatalogRows swaps the whole snapshot in one transaction; a sync never
// leaves a half-written catalog behind.
func (d *DB) ReplaceCatalogRows(rows []internal.CatalogRow) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM catalog_rows`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO catalog_rows (rowNo, category, selection, description, unit, syncedAt)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(rowNo) DO UPDATE SET
  category=excluded.category,
  selection=excluded.selection,
  description=excluded.description,
  unit=excluded.unit,
  syncedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Row, r.Category, r.Selection, r.Description, r.Unit); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListCatalogRows() ([]internal.CatalogRow, error) {
	rows, err := d.conn.Query(`
SELECT rowNo, category, selection, description, unit
FROM catalog_rows ORDER BY rowNo ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CatalogRow
	for rows.Next() {
		var r internal.CatalogRow
		if err := rows.Scan(&r.Row, &r.Category, &r.Selection, &r.Description, &r.Unit); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (d *DB) RecordLookup(entry internal.LookupLog) error {
	_, err := d.conn.Exec(`
INSERT INTO lookups (traceId, input, quantity, action, status, matches, related, durationMs)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, entry.TraceID, entry.Input, entry.Quantity, entry.Action, string(entry.Status), entry.Matches, entry.Related, entry.DurationMs)
	return err
}

func (d *DB) ListRecentLookups(limit int) ([]internal.LookupLog, error) {
	rows, err := d.conn.Query(`
SELECT traceId, input, quantity, action, status, matches, related, durationMs, createdAt
FROM lookups ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.LookupLog
	for rows.Next() {
		var entry internal.LookupLog
		var status string
		if err := rows.Scan(&entry.TraceID, &entry.Input, &entry.Quantity, &entry.Action, &status, &entry.Matches, &entry.Related, &entry.DurationMs, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Status = internal.LookupStatus(status)
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
