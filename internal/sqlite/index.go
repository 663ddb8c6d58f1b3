// Package sqlite implements a SQLite search index over diary records.
//
// The diary file stays the source of truth; the index is a query cache that
// is rebuilt from it, the same way the database is reloaded from JSON on
// every attach.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/diary/pkg/types"
)

// ErrIndexClosed is returned by every operation after Close.
var ErrIndexClosed = errors.New("index is closed")

const schemaSQL = `CREATE TABLE IF NOT EXISTS entries (
    entry_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    day INTEGER NOT NULL,
    month INTEGER NOT NULL,
    year INTEGER NOT NULL,
    sort_key INTEGER NOT NULL,
    note TEXT NOT NULL,
    note_folded TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_sort_key ON entries (sort_key);`

// Hit is one matching record and its 1-based position in the diary.
type Hit struct {
	EntryID  string       `json:"entry_id"`
	Position int          `json:"position"`
	Record   types.Record `json:"record"`
}

// Index is a SQLite-backed search index. It is safe for concurrent use.
type Index struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens or creates the index database at path. Use ":memory:" for a
// throwaway index.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close releases the database. Close is idempotent.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.db == nil {
		return nil
	}
	err := ix.db.Close()
	ix.db = nil
	return err
}

// Rebuild replaces the index content with records, in order, inside one
// transaction. It returns the number of rows written.
func (ix *Index) Rebuild(records iter.Seq[types.Record]) (int, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.db == nil {
		return 0, ErrIndexClosed
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO entries (entry_id, position, day, month, year, sort_key, note, note_folded) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	pos := 0
	for r := range records {
		pos++
		if _, err := stmt.Exec(generateUUID(), pos, r.Day, r.Month, r.Year, sortKey(r.Date), r.Note, strings.ToLower(r.Note)); err != nil {
			return 0, fmt.Errorf("indexing record %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return pos, nil
}

// Count returns the number of indexed records.
func (ix *Index) Count() (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.db == nil {
		return 0, ErrIndexClosed
	}
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Search returns records whose note contains text, ignoring case, in diary
// order. Notes are folded with strings.ToLower at Rebuild, since SQLite's
// lower() only folds ASCII. An empty text matches every record.
func (ix *Index) Search(text string) ([]Hit, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	return ix.query(
		`SELECT entry_id, position, day, month, year, note FROM entries
		 WHERE note_folded LIKE ? ESCAPE '\' ORDER BY position`,
		pattern,
	)
}

// Between returns records dated from from through to inclusive, oldest
// first. Records on the same day keep diary order.
func (ix *Index) Between(from, to types.Date) ([]Hit, error) {
	return ix.query(
		`SELECT entry_id, position, day, month, year, note FROM entries
		 WHERE sort_key BETWEEN ? AND ? ORDER BY sort_key, position`,
		sortKey(from), sortKey(to),
	)
}

func (ix *Index) query(q string, args ...any) ([]Hit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.db == nil {
		return nil, ErrIndexClosed
	}

	rows, err := ix.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.EntryID, &h.Position, &h.Record.Day, &h.Record.Month, &h.Record.Year, &h.Record.Note); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return hits, nil
}

// sortKey packs a date into yyyymmdd so SQLite can order and range over it.
func sortKey(d types.Date) int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// escapeLike escapes the LIKE wildcards in s.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// generateUUID generates a new UUID v7 for an index row.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
