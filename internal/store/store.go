// Package store archives generated puzzles in a SQLite database. Batch runs
// write here so puzzles survive the process and can be listed or exported
// later.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/lycan/internal/puzzle"
)

//go:embed schema.sql
var schemaSQL string

// Record is one archived puzzle row.
type Record struct {
	ID         string
	CreatedAt  time.Time
	N          int
	Code       string
	Solution   int
	Shill      int
	Difficulty int
	Seed       int64
	Attempts   int
}

// Store manages the SQLite puzzle archive.
type Store struct {
	db     *sql.DB
	dbPath string
}

// New opens (creating if needed) the archive at dbPath. ":memory:" is
// accepted for tests.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing when several workers share the archive.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}
	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry retries "database is locked" errors with linear backoff.
func execWithRetry(db *sql.DB, stmt string, attempts int, backoff time.Duration) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if _, err = db.Exec(stmt); err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		time.Sleep(backoff * time.Duration(attempt))
	}
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePuzzle archives a puzzle and returns its record ID.
func (s *Store) SavePuzzle(p *puzzle.Puzzle) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO puzzles (id, n, code, solution, shill, difficulty, seed, attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.N, p.Encode(), p.Solution, p.Shill, p.Difficulty, p.Seed, p.Attempts,
	)
	if err != nil {
		return "", fmt.Errorf("insert puzzle: %w", err)
	}
	return id, nil
}

// Recent returns up to limit archived puzzles, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, n, code, solution, shill, difficulty, seed, attempts
		 FROM puzzles ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query puzzles: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.N, &r.Code, &r.Solution, &r.Shill,
			&r.Difficulty, &r.Seed, &r.Attempts); err != nil {
			return nil, fmt.Errorf("scan puzzle row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate puzzle rows: %w", err)
	}
	return out, nil
}

// Count returns the number of archived puzzles.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM puzzles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count puzzles: %w", err)
	}
	return count, nil
}
