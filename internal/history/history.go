// Package history keeps a durable ledger of executed commands in
// SQLite. The ledger is observability for the user ("what did I ask
// for last night?"), not a source of truth for task state.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marcus/voicetask/internal/command"
)

// Entry is one recorded command.
type Entry struct {
	ID          int64     `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	RawText     string    `json:"raw_text"`
	Intent      string    `json:"intent"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
}

// Ledger wraps the SQLite connection and path.
type Ledger struct {
	sql  *sql.DB
	path string
}

const historyFile = "history.db"

// DefaultPath returns the default history database path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "voicetask", historyFile)
}

// Open opens or creates the ledger database, applies pragmas, and runs
// migrations.
func Open(dbPath string) (*Ledger, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	if err := applyPragmas(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := migrate(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Ledger{sql: sqlDB, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l == nil || l.sql == nil {
		return nil
	}
	return l.sql.Close()
}

// Path returns the resolved database path.
func (l *Ledger) Path() string {
	return l.path
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("applying %q: %w", p, err)
		}
	}
	return nil
}

// RecordCommand inserts one executed command. Implements
// session.Recorder.
func (l *Ledger) RecordCommand(raw string, intent command.IntentKind, status command.Status, message string) error {
	_, err := l.sql.Exec(
		`INSERT INTO commands (submitted_at, raw_text, intent, status, message) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), raw, intent.String(), string(status), message,
	)
	if err != nil {
		return fmt.Errorf("inserting command: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.sql.Query(
		`SELECT id, submitted_at, raw_text, intent, status, message
		 FROM commands ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying commands: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var submitted string
		if err := rows.Scan(&e.ID, &submitted, &e.RawText, &e.Intent, &e.Status, &e.Message); err != nil {
			return nil, fmt.Errorf("scanning command row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, submitted); perr == nil {
			e.SubmittedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command rows: %w", err)
	}
	return entries, nil
}
