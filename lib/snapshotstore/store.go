package snapshotstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"nyc-rep-showtimes/lib/schedule"

	_ "modernc.org/sqlite"
)

// every successful run's document is archived here, one row per run.
// the canonical output stays in the per-source JSON file; this table
// exists so schedule history survives the atomic replacement of that
// file.
const Schema = `
CREATE TABLE IF NOT EXISTS run_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	document TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS run_snapshots_source_fetched_at
	ON run_snapshots (source, fetched_at);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return Store{db: db}, nil
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) Push(ctx context.Context, doc *schedule.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	fetchedAt, err := time.Parse(time.RFC3339, doc.FetchedAt)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO run_snapshots (source, fetched_at, document) VALUES (?, ?, ?)`,
		doc.Source, fetchedAt.Unix(), string(raw),
	)
	return err
}

type Entry struct {
	FetchedAt time.Time
	Document  schedule.Document
}

// Pull returns up to `limit` archived runs for a source, newest first.
func (s Store) Pull(ctx context.Context, source string, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT fetched_at, document FROM run_snapshots
		 WHERE source = ? ORDER BY fetched_at DESC LIMIT ?`,
		source, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var fetchedAt int64
		var raw string
		if err := rows.Scan(&fetchedAt, &raw); err != nil {
			return nil, err
		}

		var doc schedule.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			FetchedAt: time.Unix(fetchedAt, 0).UTC(),
			Document:  doc,
		})
	}
	return entries, rows.Err()
}
