// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns a completed ReportSession into downloadable documents.
// Every format implements convert.Writer; the structured DocumentModel is
// derived from the session's normalized Markdown each time a report is built.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/pkg/types"
)

const (
	// DefaultTitle is used when no title is configured.
	DefaultTitle = "Financial Report"

	// DefaultPrefix is the file name prefix used when none is configured.
	DefaultPrefix = "financial_report"

	fileTimeLayout = "20060102_150405"
)

// DefaultFormats are written when no formats are configured.
var DefaultFormats = []string{FormatDocx}

// Options holds the document-level settings applied to every report.
type Options struct {
	Title  string
	Footer string
}

// Build returns the report for a completed session.
func Build(s *types.ReportSession, opts Options) (*types.Report, error) {
	if s.Status != types.ReportCompleted {
		return nil, fmt.Errorf("report %s is %s, not %s", s.ID, s.Status, types.ReportCompleted)
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	generated := s.CompletedAt
	if generated.IsZero() {
		generated = s.CreatedAt
	}
	return convert.NewReport(s.Markdown, convert.ReportInfo{
		ID:          s.ID,
		Title:       title,
		SourceName:  s.SourceName,
		Footer:      opts.Footer,
		GeneratedAt: generated,
	}), nil
}

// FileName returns "<prefix>_YYYYMMDD_HHMMSS<ext>" for t.
func FileName(prefix string, t time.Time, ext string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return prefix + "_" + t.Format(fileTimeLayout) + ext
}

// Format names accepted by WriterFor.
const (
	FormatDocx     = "docx"
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// Formats lists every supported format name.
func Formats() []string {
	return []string{FormatDocx, FormatMarkdown, FormatHTML}
}

// WriterFor returns the writer for a format name. "markdown" is accepted as
// an alias of "md".
func WriterFor(format string) (convert.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatDocx, "word":
		return DocxWriter{}, nil
	case FormatMarkdown, "markdown":
		return MarkdownWriter{}, nil
	case FormatHTML, "htm":
		return HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
}

// WritersFor resolves format names in order, dropping duplicates. An empty
// list selects DefaultFormats.
func WritersFor(formats []string) ([]convert.Writer, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	seen := make(map[string]bool)
	var writers []convert.Writer
	for _, f := range formats {
		w, err := WriterFor(f)
		if err != nil {
			return nil, err
		}
		if seen[w.Format()] {
			continue
		}
		seen[w.Format()] = true
		writers = append(writers, w)
	}
	return writers, nil
}

// runsMarkdown renders runs back to inline Markdown.
func runsMarkdown(runs []types.Run, bold func(string) string) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Bold {
			b.WriteString(bold(r.Text))
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}
