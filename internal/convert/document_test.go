// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/report-engine/pkg/types"
)

func TestParseBoldSpans(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []types.Run
	}{
		{
			name: "empty line has no runs",
			line: "",
			want: nil,
		},
		{
			name: "no markers",
			line: "Client has stable income.",
			want: []types.Run{types.Plain("Client has stable income.")},
		},
		{
			name: "bold in the middle",
			line: "pay **$500** now",
			want: []types.Run{types.Plain("pay "), types.Bold("$500"), types.Plain(" now")},
		},
		{
			name: "bold at both ends",
			line: "**a** middle **b**",
			want: []types.Run{types.Bold("a"), types.Plain(" middle "), types.Bold("b")},
		},
		{
			name: "adjacent spans",
			line: "**a****b**",
			want: []types.Run{types.Bold("a"), types.Bold("b")},
		},
		{
			name: "unterminated marker is literal",
			line: "a **b c",
			want: []types.Run{types.Plain("a **b c")},
		},
		{
			name: "closed span followed by unterminated marker",
			line: "**x** then **y",
			want: []types.Run{types.Bold("x"), types.Plain(" then **y")},
		},
		{
			name: "empty span is literal",
			line: "a **** b",
			want: []types.Run{types.Plain("a **** b")},
		},
		{
			name: "non-greedy match",
			line: "**a** b **c**",
			want: []types.Run{types.Bold("a"), types.Plain(" b "), types.Bold("c")},
		},
		{
			name: "whitespace-only line is one plain run",
			line: "   ",
			want: []types.Run{types.Plain("   ")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBoldSpans(tt.line))
		})
	}
}

func TestToDocumentModel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []types.Block
	}{
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "mixed document",
			in:   "**Summary**\nClient has stable income.\n- Increase **retirement** contributions",
			want: []types.Block{
				types.Heading(2, types.Plain("Summary")),
				types.Paragraph(types.Plain("Client has stable income.")),
				types.Bullet(types.Plain("Increase "), types.Bold("retirement"), types.Plain(" contributions")),
			},
		},
		{
			name: "bullet with bold",
			in:   "- pay **$500** now",
			want: []types.Block{
				types.Bullet(types.Plain("pay "), types.Bold("$500"), types.Plain(" now")),
			},
		},
		{
			name: "hash heading with bold span",
			in:   "## Plan for **2027**",
			want: []types.Block{
				types.Heading(2, types.Plain("Plan for "), types.Bold("2027")),
			},
		},
		{
			name: "blank lines become separators",
			in:   "a\n\n  \nb",
			want: []types.Block{
				types.Paragraph(types.Plain("a")),
				types.BlankSeparator(),
				types.BlankSeparator(),
				types.Paragraph(types.Plain("b")),
			},
		},
		{
			name: "normalized heading",
			in:   "## Title\n\nBody",
			want: []types.Block{
				types.Heading(2, types.Plain("Title")),
				types.BlankSeparator(),
				types.Paragraph(types.Plain("Body")),
			},
		},
		{
			name: "empty heading and empty bullet",
			in:   "## \n- ",
			want: []types.Block{
				types.Heading(2),
				types.Bullet(),
			},
		},
		{
			name: "unterminated bold in paragraph",
			in:   "a **b c",
			want: []types.Block{
				types.Paragraph(types.Plain("a **b c")),
			},
		},
		{
			name: "dash without space is a paragraph",
			in:   "-5% return",
			want: []types.Block{
				types.Paragraph(types.Plain("-5% return")),
			},
		},
		{
			name: "crlf input",
			in:   "**Goals**\r\n- retire early",
			want: []types.Block{
				types.Heading(2, types.Plain("Goals")),
				types.Bullet(types.Plain("retire early")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDocumentModel(tt.in)
			assert.Equal(t, tt.want, got.Blocks)
		})
	}
}

func TestToDocumentModelWithoutMarkers(t *testing.T) {
	in := "Income is stable.\n\n- reduce debt\n- build savings\n\nClosing."
	doc := ToDocumentModel(in)
	lines := strings.Split(in, "\n")
	require.Len(t, doc.Blocks, len(lines))

	for i, b := range doc.Blocks {
		assert.NotEqual(t, types.BlockHeading, b.Kind)
		if isBlank(lines[i]) {
			assert.Equal(t, types.BlockBlank, b.Kind)
			assert.Empty(t, b.Runs)
			continue
		}
		require.Len(t, b.Runs, 1, "line %q", lines[i])
		assert.False(t, b.Runs[0].Bold)
	}
}

func TestToDocumentModelEveryLineWrapped(t *testing.T) {
	doc := ToDocumentModel("**Income**\n**Expenses**\n  **Goals**  ")
	require.Len(t, doc.Blocks, 3)
	for _, b := range doc.Blocks {
		assert.Equal(t, types.BlockHeading, b.Kind)
		assert.Equal(t, 2, b.Level)
	}
}

// visibleText is the line as a reader sees it: list or heading marker
// removed and bold markers stripped.
func visibleText(line string) string {
	if inner, ok := wrappedHeading(line); ok {
		return inner
	}
	line = strings.TrimPrefix(line, headingPrefix)
	line = strings.TrimPrefix(line, bulletPrefix)
	return StripBold(line)
}

func TestRunsReconstructVisibleText(t *testing.T) {
	for _, s := range corpus {
		lines := splitLines(s)
		doc := ToDocumentModel(s)
		require.Len(t, doc.Blocks, len(lines), "input %q", s)

		for i, b := range doc.Blocks {
			if b.Kind == types.BlockBlank {
				continue
			}
			assert.Equal(t, visibleText(lines[i]), b.Text(), "line %q", lines[i])
		}
	}
}

func TestConvert(t *testing.T) {
	res := Convert("**Summary**\nClient has stable income.\n- Increase **retirement** contributions")

	assert.Equal(t, "## Summary\n\nClient has stable income.\n- Increase **retirement** contributions", res.Markdown)
	assert.Equal(t, []types.Block{
		types.Heading(2, types.Plain("Summary")),
		types.BlankSeparator(),
		types.Paragraph(types.Plain("Client has stable income.")),
		types.Bullet(types.Plain("Increase "), types.Bold("retirement"), types.Plain(" contributions")),
	}, res.Document.Blocks)
}

func TestStripBold(t *testing.T) {
	assert.Equal(t, "pay $500 now", StripBold("pay **$500** now"))
	assert.Equal(t, "a **b c", StripBold("a **b c"))
}
