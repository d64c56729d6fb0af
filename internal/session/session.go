// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session stores ReportSession records. Sessions are created per
// request, passed explicitly between the workflow and its callers, and saved
// to a Store keyed by ID.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/report-engine/pkg/types"
)

// ErrNotFound is returned by Get when no session has the requested ID.
var ErrNotFound = errors.New("report session not found")

// Store persists report sessions.
type Store interface {
	// Save inserts or replaces the session with s.ID.
	Save(ctx context.Context, s *types.ReportSession) error

	// Get returns the session with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*types.ReportSession, error)

	// List returns up to limit sessions, newest first. A limit of zero or
	// less returns all sessions.
	List(ctx context.Context, limit int) ([]*types.ReportSession, error)

	Close() error
}

// New returns a pending session for a file received at now.
func New(sourceName string, now time.Time) *types.ReportSession {
	return &types.ReportSession{
		ID:         uuid.NewString(),
		SourceName: sourceName,
		Status:     types.ReportPending,
		CreatedAt:  now.UTC(),
	}
}

// Complete records the assistant reply and its normalized form.
func Complete(s *types.ReportSession, raw, markdown string, now time.Time) {
	s.Status = types.ReportCompleted
	s.RawText = raw
	s.Markdown = markdown
	s.Error = ""
	s.CompletedAt = now.UTC()
}

// Fail records a failure message.
func Fail(s *types.ReportSession, err error, now time.Time) {
	s.Status = types.ReportFailed
	s.Error = err.Error()
	s.CompletedAt = now.UTC()
}

// ValidID reports whether id is a well-formed session ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Open returns the store selected by cfg.
func Open(cfg types.ArchiveConfig) (Store, error) {
	switch cfg.Backend {
	case types.ArchiveMemory, "":
		return NewMemoryStore(), nil
	case types.ArchiveSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown archive backend %q (want %s or %s)",
			cfg.Backend, types.ArchiveMemory, types.ArchiveSQLite)
	}
}
