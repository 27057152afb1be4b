// Package objectstore persists JSON documents in SQLite, keyed by
// (kind, id). It is the storage layer behind virtboard's repositories.
package objectstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no document exists under the requested key.
var ErrNotFound = errors.New("object not found")

const schema = `
CREATE TABLE IF NOT EXISTS objects (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	doc  TEXT NOT NULL,
	PRIMARY KEY (kind, id)
);`

// Store is a JSON blob store over a single SQLite database.
type Store struct {
	db *sql.DB
}

// MemoryPath opens the store fully in memory; used in test mode so an
// embedded server leaves nothing on disk.
const MemoryPath = ":memory:"

// Open opens (creating if needed) the store at path and applies the schema.
func Open(path string) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps an
	// in-memory database from vanishing between calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping verifies the database is reachable; the health endpoint uses it.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put upserts doc (JSON-encoded) under (kind, id).
func (s *Store) Put(ctx context.Context, kind, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", kind, id, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO objects (kind, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT (kind, id) DO UPDATE SET doc = excluded.doc`,
		kind, id, string(raw))
	return err
}

// Get decodes the document under (kind, id) into out.
func (s *Store) Get(ctx context.Context, kind, id string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM objects WHERE kind = ? AND id = ?`, kind, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// Exists reports whether a document is stored under (kind, id).
func (s *Store) Exists(ctx context.Context, kind, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM objects WHERE kind = ? AND id = ?`, kind, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the document under (kind, id).
func (s *Store) Delete(ctx context.Context, kind, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM objects WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every document of the given kind in insertion order.
func (s *Store) List(ctx context.Context, kind string) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM objects WHERE kind = ? ORDER BY rowid`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, json.RawMessage(raw))
	}
	return docs, rows.Err()
}
