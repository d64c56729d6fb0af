// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/report-engine/pkg/types"
)

// Result holds both derivations of one assistant reply.
type Result struct {
	// Markdown is the normalized text for on-screen display.
	Markdown string

	// Document is the structured model for document writers.
	Document types.DocumentModel
}

// Convert normalizes raw and builds the DocumentModel from the normalized text.
func Convert(raw string) Result {
	md := Normalize(raw)
	return Result{
		Markdown: md,
		Document: ToDocumentModel(md),
	}
}

// ReportInfo carries the document-level fields of a report that are not
// derived from the assistant's text.
type ReportInfo struct {
	ID          string
	Title       string
	SourceName  string
	Footer      string
	GeneratedAt time.Time
}

// NewReport converts raw and attaches info, producing what a Writer needs.
func NewReport(raw string, info ReportInfo) *types.Report {
	res := Convert(raw)
	return &types.Report{
		ID:          info.ID,
		Title:       info.Title,
		SourceName:  info.SourceName,
		Footer:      info.Footer,
		GeneratedAt: info.GeneratedAt,
		Markdown:    res.Markdown,
		Document:    res.Document,
	}
}

// Writer serializes a report into one concrete file format. The report
// package provides docx, Markdown, and HTML implementations.
type Writer interface {
	// Format returns the short format name (e.g. "docx").
	Format() string

	// Extension returns the file extension including the dot.
	Extension() string

	// ContentType returns the MIME type of the output.
	ContentType() string

	// Write serializes r to w.
	Write(w io.Writer, r *types.Report) error
}

// Status is the outcome of converting one saved reply.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts a saved assistant reply at path into one document
// per writer under outDir. Frontmatter written by the Markdown writer is
// honored for the title, source, footer, and timestamp, and the footer
// block at the end of the body is dropped so it is not written twice. Outputs that already exist
// are left alone; when every output exists the file is skipped.
func ConvertFile(path, outDir string, writers []Writer, info ReportInfo, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var pending []Writer
	for _, wr := range writers {
		out := filepath.Join(outDir, base+wr.Extension())
		if sameFile(out, path) {
			continue
		}
		if _, err := os.Stat(out); err == nil {
			continue
		}
		pending = append(pending, wr)
	}
	if len(pending) == 0 {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	meta, body, err := SplitFrontmatter(data)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}
	info = meta.apply(info)
	body = []byte(StripFooter(string(body), info.Footer))
	if info.GeneratedAt.IsZero() {
		if st, err := os.Stat(path); err == nil {
			info.GeneratedAt = st.ModTime()
		}
	}
	if info.SourceName == "" {
		info.SourceName = filepath.Base(path)
	}

	rep := NewReport(string(body), info)
	for _, wr := range pending {
		out := filepath.Join(outDir, base+wr.Extension())
		if err := WriteFile(out, wr, rep); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			return StatusFailed
		}
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch converts each path, printing per-file status to w and
// returning a summary.
func ConvertBatch(paths []string, outDir string, writers []Writer, info ReportInfo, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(p, outDir, writers, info, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// WriteFile serializes rep with wr into a new file at path. A partially
// written file is removed on failure.
func WriteFile(path string, wr Writer, rep *types.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := wr.Write(f, rep); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", wr.Format(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
