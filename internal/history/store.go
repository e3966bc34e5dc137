// Package history persists a log of theme apply attempts.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded apply attempt.
type Entry struct {
	ID        int64
	Requested string // name as requested, possibly "random"
	Theme     string // resolved concrete name
	Success   bool
	Detail    string // generator diagnostic text on failure
	AppliedAt time.Time
}

// Store handles SQLite operations for the apply log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS applies (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			requested  TEXT NOT NULL,
			theme      TEXT NOT NULL,
			success    INTEGER NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_applies_applied_at ON applies(applied_at);
	`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends an apply attempt to the log.
func (s *Store) Record(requested, theme string, success bool, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO applies (requested, theme, success, detail, applied_at) VALUES (?, ?, ?, ?, ?)`,
		requested, theme, boolToInt(success), detail, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record apply: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, requested, theme, success, detail, applied_at
		 FROM applies ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var success int
		if err := rows.Scan(&e.ID, &e.Requested, &e.Theme, &success, &e.Detail, &e.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastApplied returns the most recent successful entry, or nil if no
// apply has ever succeeded.
func (s *Store) LastApplied() (*Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, requested, theme, success, detail, applied_at
		 FROM applies WHERE success = 1 ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return nil, fmt.Errorf("query last applied: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var e Entry
	var success int
	if err := rows.Scan(&e.ID, &e.Requested, &e.Theme, &success, &e.Detail, &e.AppliedAt); err != nil {
		return nil, fmt.Errorf("scan last applied: %w", err)
	}
	e.Success = success != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
