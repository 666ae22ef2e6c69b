// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records generated outputs in a SQLite database so past
// splits can be listed later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

const defaultLimit = 20

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Store manages the split history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.local/share/pdf-splitter/history.db, or a path in
// the working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pdf-splitter-history.db"
	}
	return filepath.Join(home, ".local", "share", "pdf-splitter", "history.db")
}

// Open opens or creates the history database at path and creates the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS splits (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			first_page INTEGER NOT NULL,
			last_page INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			backend TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_splits_created_at ON splits(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_splits_source ON splits(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one generated output. Missing IDs and timestamps are filled
// in; the stored record is returned.
func (s *Store) Record(ctx context.Context, rec types.SplitRecord) (types.SplitRecord, error) {
	if rec.ID == "" {
		rec.ID = xid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Pages == 0 {
		rec.Pages = types.PageInterval{Start: rec.FirstPage, End: rec.LastPage}.Len()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO splits (id, source, output, first_page, last_page, pages, backend, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Output, rec.FirstPage, rec.LastPage, rec.Pages,
		string(rec.Backend), rec.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting split record: %w", err)
	}
	return rec, nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Source restricts results to one source file path.
	Source string

	// Limit caps the number of records (default 20).
	Limit int
}

// List returns recorded outputs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.SplitRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, source, output, first_page, last_page, pages, backend, created_at FROM splits`
	var args []any
	if opts.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying splits: %w", err)
	}
	defer rows.Close()

	var records []types.SplitRecord
	for rows.Next() {
		var rec types.SplitRecord
		var backend, created string
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Output, &rec.FirstPage,
			&rec.LastPage, &rec.Pages, &backend, &created); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}
		rec.Backend = types.Backend(backend)
		rec.CreatedAt, err = time.Parse(timeFormat, created)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
