// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/report-engine/pkg/types"
)

// SQLiteStore keeps sessions in a SQLite database so reports survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite archive path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			source_name TEXT NOT NULL,
			status TEXT NOT NULL,
			raw_text TEXT,
			markdown TEXT,
			error TEXT,
			created_at TEXT NOT NULL,
			completed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, r *types.ReportSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (id, source_name, status, raw_text, markdown, error, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_name = excluded.source_name,
			status = excluded.status,
			raw_text = excluded.raw_text,
			markdown = excluded.markdown,
			error = excluded.error,
			created_at = excluded.created_at,
			completed_at = excluded.completed_at`,
		r.ID, r.SourceName, string(r.Status), r.RawText, r.Markdown, r.Error,
		formatTime(r.CreatedAt), formatTime(r.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", r.ID, err)
	}
	return nil
}

const selectColumns = `SELECT id, source_name, status, raw_text, markdown, error, created_at, completed_at FROM reports`

func (s *SQLiteStore) Get(ctx context.Context, id string) (*types.ReportSession, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	r, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading report %s: %w", id, err)
	}
	return r, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*types.ReportSession, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []*types.ReportSession
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (*types.ReportSession, error) {
	var (
		r                      types.ReportSession
		status                 string
		raw, md, msg           sql.NullString
		createdAt, completedAt sql.NullString
	)
	if err := sc.Scan(&r.ID, &r.SourceName, &status, &raw, &md, &msg, &createdAt, &completedAt); err != nil {
		return nil, err
	}
	r.Status = types.ReportStatus(status)
	r.RawText = raw.String
	r.Markdown = md.String
	r.Error = msg.String

	var err error
	if r.CreatedAt, err = parseTime(createdAt.String); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if r.CompletedAt, err = parseTime(completedAt.String); err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	return &r, nil
}

// Times are stored as fixed-width UTC RFC 3339 text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
