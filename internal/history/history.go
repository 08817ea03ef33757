// Package history persists review runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"docreview/internal/report"
)

// ErrRunNotFound is returned by Get for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	document TEXT NOT NULL,
	guidelines TEXT NOT NULL,
	model TEXT NOT NULL,
	total INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// Store records review runs.
type Store struct {
	db *sql.DB
}

// Entry is the listing view of a stored run.
type Entry struct {
	RunID      string
	StartedAt  time.Time
	Document   string
	Guidelines string
	Model      string
	Summary    report.Summary
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run, replacing any run with the same ID.
func (s *Store) Record(ctx context.Context, run report.Run) error {
	if run.RunID == "" {
		return fmt.Errorf("record run: run ID is empty")
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("serialize run: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO runs (run_id, started_at, document, guidelines, model, total, passed, failed, errors, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(run_id) DO UPDATE SET
		started_at = excluded.started_at,
		document = excluded.document,
		guidelines = excluded.guidelines,
		model = excluded.model,
		total = excluded.total,
		passed = excluded.passed,
		failed = excluded.failed,
		errors = excluded.errors,
		report_json = excluded.report_json`,
		run.RunID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Document,
		run.Guidelines,
		run.Model,
		run.Summary.Total,
		run.Summary.Passed,
		run.Summary.Failed,
		run.Summary.Errors,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	return nil
}

// List returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, started_at, document, guidelines, model, report_json
	FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			startedAt string
			payload   string
		)
		if err := rows.Scan(&entry.RunID, &startedAt, &entry.Document, &entry.Guidelines, &entry.Model, &payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entry.StartedAt = parseTimestamp(startedAt)
		var run report.Run
		if err := json.Unmarshal([]byte(payload), &run); err != nil {
			return nil, fmt.Errorf("decode run %s: %w", entry.RunID, err)
		}
		entry.Summary = run.Summary
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns a stored run by ID.
func (s *Store) Get(ctx context.Context, runID string) (report.Run, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT report_json FROM runs WHERE run_id = ?", runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return report.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	var run report.Run
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return report.Run{}, fmt.Errorf("decode run %s: %w", runID, err)
	}
	return run, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
