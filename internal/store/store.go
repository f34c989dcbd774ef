// Package store persists scheduling records and session history in a
// local SQLite database. The engine packages never import this one;
// commands load records here, run the engine, and write results back.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and exposes the repositories.
type Store struct {
	db       *sqlx.DB
	Records  *RecordRepo
	Sessions *SessionRepo
}

// Open connects to the SQLite database at path, applies the
// recommended pragmas, and creates any missing tables.
func Open(path string) (*Store, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{
		db:       db,
		Records:  &RecordRepo{db: db},
		Sessions: &SessionRepo{db: db},
	}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	item_id          TEXT NOT NULL,
	category         TEXT NOT NULL,
	interval_days    REAL NOT NULL,
	ease_factor      REAL NOT NULL,
	repetitions      INTEGER NOT NULL,
	quality_history  TEXT NOT NULL DEFAULT '[]',
	last_reviewed_at TEXT NOT NULL,
	next_due_at      TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	PRIMARY KEY (item_id, category)
);

CREATE INDEX IF NOT EXISTS idx_records_next_due ON records (next_due_at);

CREATE TABLE IF NOT EXISTS sessions (
	session_id      TEXT PRIMARY KEY,
	started_at      TEXT NOT NULL,
	duration_ms     INTEGER NOT NULL,
	total           INTEGER NOT NULL,
	correct         INTEGER NOT NULL,
	incorrect       INTEGER NOT NULL,
	accuracy        REAL NOT NULL,
	avg_response_ms INTEGER NOT NULL,
	categories      TEXT NOT NULL DEFAULT '{}'
);
`

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. OSARAI_DB environment variable
// 2. $XDG_DATA_HOME/osarai/osarai.db
// 3. ~/.local/share/osarai/osarai.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("OSARAI_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "osarai", "osarai.db"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
