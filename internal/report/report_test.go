// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/report-engine/pkg/types"
)

var generatedAt = time.Date(2025, time.March, 5, 14, 7, 9, 0, time.UTC)

func completedSession(markdown string) *types.ReportSession {
	return &types.ReportSession{
		ID:          "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		SourceName:  "client.txt",
		Status:      types.ReportCompleted,
		RawText:     markdown,
		Markdown:    markdown,
		CreatedAt:   generatedAt.Add(-time.Minute),
		CompletedAt: generatedAt,
	}
}

const sampleMarkdown = "## Summary\n\nYou have **£5,000** saved & growing.\n## Next Steps\n\n- Open an **ISA**\n- Review <pension>"

func TestBuild(t *testing.T) {
	r, err := Build(completedSession(sampleMarkdown), Options{Footer: "Fortis Advisers"})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, r.Title)
	assert.Equal(t, "Fortis Advisers", r.Footer)
	assert.Equal(t, generatedAt, r.GeneratedAt)
	assert.Equal(t, "client.txt", r.SourceName)
	assert.Equal(t, sampleMarkdown, r.Markdown)

	require.Equal(t, 7, r.Document.Len())
	assert.Equal(t, types.Heading(2, types.Plain("Summary")), r.Document.Blocks[0])
	assert.Equal(t, types.BlankSeparator(), r.Document.Blocks[1])
	assert.Equal(t, types.Bullet(types.Plain("Open an "), types.Bold("ISA")), r.Document.Blocks[5])
}

func TestBuildRejectsIncompleteSession(t *testing.T) {
	s := completedSession("x")
	s.Status = types.ReportFailed
	_, err := Build(s, Options{})
	assert.ErrorContains(t, err, "failed")
}

func TestBuildFallsBackToCreatedAt(t *testing.T) {
	s := completedSession("x")
	s.CompletedAt = time.Time{}
	r, err := Build(s, Options{Title: "Plan"})
	require.NoError(t, err)
	assert.Equal(t, s.CreatedAt, r.GeneratedAt)
	assert.Equal(t, "Plan", r.Title)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		prefix, ext, want string
	}{
		{"", ".docx", "financial_report_20250305_140709.docx"},
		{"client_ann", "md", "client_ann_20250305_140709.md"},
		{"x", "", "x_20250305_140709"},
	}
	for _, tt := range tests {
		if got := FileName(tt.prefix, generatedAt, tt.ext); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.prefix, tt.ext, got, tt.want)
		}
	}
}

func TestWritersFor(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		want    []string
		wantErr bool
	}{
		{"default", nil, []string{"docx"}, false},
		{"all", []string{"docx", "md", "html"}, []string{"docx", "md", "html"}, false},
		{"aliases and case", []string{"Markdown", " HTML ", "word"}, []string{"md", "html", "docx"}, false},
		{"duplicates dropped", []string{"md", "markdown", "md"}, []string{"md"}, false},
		{"unknown", []string{"docx", "pdf"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writers, err := WritersFor(tt.formats)
			if tt.wantErr {
				assert.ErrorContains(t, err, "pdf")
				return
			}
			require.NoError(t, err)
			var got []string
			for _, w := range writers {
				got = append(got, w.Format())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriterMetadata(t *testing.T) {
	for _, f := range Formats() {
		w, err := WriterFor(f)
		require.NoError(t, err)
		assert.Equal(t, "."+f, w.Extension())
		assert.NotEmpty(t, w.ContentType())
	}
}
