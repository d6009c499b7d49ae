// Package sqlitestore is a SQLite implementation of the repository interfaces,
// used when the service runs without MongoDB.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"leadstyle/internal/repository"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DB wraps the SQLite handle shared by the three repositories
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, applies pragmas and migrates
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlitestore: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open database: %w", err)
	}
	// pragmas below are per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlitestore: pragma %q: %w", p, err)
		}
	}

	s := &DB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: migration: %w", err)
	}
	return s, nil
}

// NewStore opens the database and returns a repository.Store backed by it
func NewStore(path string) (*repository.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return repository.NewStore(
		&respondentRepo{db: db.db},
		&responseRepo{db: db.db},
		&resultRepo{db: db.db},
		db,
	), nil
}

// Close closes the underlying database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS respondents (
			id         TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			email      TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS responses (
			id            TEXT PRIMARY KEY,
			respondent_id TEXT    NOT NULL REFERENCES respondents(id),
			question_id   INTEGER NOT NULL,
			answer        TEXT    NOT NULL,
			answered_at   TEXT    NOT NULL,
			UNIQUE (respondent_id, question_id)
		);

		CREATE TABLE IF NOT EXISTS results (
			id                  TEXT PRIMARY KEY,
			respondent_id       TEXT    NOT NULL UNIQUE REFERENCES respondents(id),
			primary_style       TEXT    NOT NULL,
			secondary_style     TEXT    NOT NULL,
			directive_score     INTEGER NOT NULL,
			informative_score   INTEGER NOT NULL,
			participative_score INTEGER NOT NULL,
			delegative_score    INTEGER NOT NULL,
			adequacy_score      INTEGER NOT NULL,
			adequacy_level      TEXT    NOT NULL,
			adaptability        TEXT    NOT NULL,
			created_at          TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_respondents_created ON respondents(created_at);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// fixed width so that text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
