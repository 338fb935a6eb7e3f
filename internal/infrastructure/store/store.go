// Package store persists feed items in SQLite and serves them in pages.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tesso57/pullfeed/internal/domain/paging"
	"github.com/tesso57/pullfeed/internal/domain/reading"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	key         TEXT PRIMARY KEY,
	guid        TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	link        TEXT NOT NULL DEFAULT '',
	published   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	date_ms     INTEGER NOT NULL,
	feed_title  TEXT NOT NULL DEFAULT '',
	feed_url    TEXT NOT NULL DEFAULT '',
	saved_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS items_date ON items (date_ms DESC, key);
`

var zeroMillis = time.Time{}.UnixMilli()

// Store is a SQLite-backed item collection ordered newest first.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert stores items, refreshing the fields of ones already present, and
// returns how many were new. Items without a key are skipped.
func (s *Store) Upsert(ctx context.Context, items []reading.Item) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO items (key, guid, title, link, published, description, date_ms, feed_title, feed_url, saved_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (key) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = insert.Close() }()

	update, err := tx.PrepareContext(ctx, `
		UPDATE items SET guid = ?, title = ?, link = ?, published = ?, description = ?, date_ms = ?, feed_title = ?, feed_url = ?
		WHERE key = ?`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = update.Close() }()

	savedAt := s.now().UnixMilli()
	inserted := 0
	for _, item := range items {
		key := item.Key()
		if key == "" {
			continue
		}
		date := item.Date.UnixMilli()
		res, err := insert.ExecContext(ctx, key, item.GUID, item.Title, item.Link, item.Published,
			item.Description, date, item.FeedTitle, item.FeedURL, savedAt)
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n > 0 {
			inserted++
			continue
		}
		if _, err := update.ExecContext(ctx, item.GUID, item.Title, item.Link, item.Published,
			item.Description, date, item.FeedTitle, item.FeedURL, key); err != nil {
			return 0, fmt.Errorf("update %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Page returns the items of page p, newest first. A page past the end is
// empty.
func (s *Store) Page(ctx context.Context, p paging.Page) ([]reading.Item, error) {
	if err := p.Valid(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT guid, title, link, published, description, date_ms, feed_title, feed_url
		FROM items
		ORDER BY date_ms DESC, key
		LIMIT ? OFFSET ?`, p.Size, p.Offset())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []reading.Item{}
	for rows.Next() {
		var item reading.Item
		var dateMS int64
		if err := rows.Scan(&item.GUID, &item.Title, &item.Link, &item.Published,
			&item.Description, &dateMS, &item.FeedTitle, &item.FeedURL); err != nil {
			return nil, err
		}
		if dateMS != zeroMillis {
			item.Date = time.UnixMilli(dateMS)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}
