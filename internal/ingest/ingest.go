// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns uploaded client data files into plain text for the
// assistant. Each supported format is handled by one TextExtractor; a
// Registry picks the first extractor whose CanHandle accepts the file name.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned when no registered extractor handles a file.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyInput is returned when a file yields no non-blank text.
	ErrEmptyInput = errors.New("no text found in file")
)

// TextExtractor reads one file format and returns its text content.
type TextExtractor interface {
	Name() string
	CanHandle(filename string) bool
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// Registry holds extractors in priority order.
type Registry struct {
	extractors []TextExtractor
}

// NewRegistry returns a registry containing the given extractors.
func NewRegistry(extractors ...TextExtractor) *Registry {
	return &Registry{extractors: extractors}
}

// DefaultRegistry returns the built-in extractors for text, CSV, Word,
// Excel and HTML files. Container-backed formats are added with Register.
func DefaultRegistry() *Registry {
	return NewRegistry(
		TextFile{},
		CSVFile{},
		DocxFile{},
		XLSXFile{},
		HTMLFile{},
	)
}

// Register appends an extractor.
func (r *Registry) Register(e TextExtractor) {
	r.extractors = append(r.extractors, e)
}

// For returns the extractor for filename or ErrUnsupportedFormat.
func (r *Registry) For(filename string) (TextExtractor, error) {
	for _, e := range r.extractors {
		if e.CanHandle(filename) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
}

// Extensions lists the file extensions accepted by the registered extractors.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, e := range r.extractors {
		if x, ok := e.(interface{ Extensions() []string }); ok {
			exts = append(exts, x.Extensions()...)
		}
	}
	return exts
}

// Extract selects an extractor for filename and returns the file's text with
// line endings normalized. Blank results produce ErrEmptyInput.
func (r *Registry) Extract(ctx context.Context, filename string, src io.Reader) (string, error) {
	e, err := r.For(filename)
	if err != nil {
		return "", err
	}
	text, err := e.Extract(ctx, src)
	if err != nil {
		return "", fmt.Errorf("extracting %s (%s): %w", filename, e.Name(), err)
	}
	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", filename, ErrEmptyInput)
	}
	return text, nil
}

// hasExt reports whether filename ends in one of exts, ignoring case.
func hasExt(filename string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
