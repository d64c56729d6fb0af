// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/report-engine/pkg/types"
)

// headingLevel is the level assigned to every heading the dialect can express.
const headingLevel = 2

// ToDocumentModel converts text line by line into blocks:
//
//	"## text"    Heading(2, ParseBoldSpans(text))
//	"**text**"   Heading(2, [text])
//	"- text"     Bullet(ParseBoldSpans(text))
//	blank        BlankSeparator
//	otherwise    Paragraph(ParseBoldSpans(line))
//
// Blank lines are kept so the rendered document preserves paragraph
// spacing. The empty string yields an empty model.
func ToDocumentModel(text string) types.DocumentModel {
	lines := splitLines(text)
	if len(lines) == 0 {
		return types.DocumentModel{}
	}

	blocks := make([]types.Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, classifyLine(line))
	}
	return types.DocumentModel{Blocks: blocks}
}

func classifyLine(line string) types.Block {
	if strings.HasPrefix(line, headingPrefix) {
		return types.Heading(headingLevel, ParseBoldSpans(line[len(headingPrefix):])...)
	}
	if isBlank(line) {
		return types.BlankSeparator()
	}
	if inner, ok := wrappedHeading(line); ok {
		return types.Heading(headingLevel, types.Plain(inner))
	}
	if strings.HasPrefix(line, bulletPrefix) {
		return types.Bullet(ParseBoldSpans(line[len(bulletPrefix):])...)
	}
	return types.Paragraph(ParseBoldSpans(line)...)
}

// ParseBoldSpans splits a line into plain and bold runs. Bold spans are
// non-overlapping, non-nested **text** matches scanned left to right; an
// unterminated ** is literal text. An empty line yields no runs.
func ParseBoldSpans(line string) []types.Run {
	if line == "" {
		return nil
	}

	matches := boldSpanPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []types.Run{types.Plain(line)}
	}

	runs := make([]types.Run, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			runs = append(runs, types.Plain(line[pos:m[0]]))
		}
		runs = append(runs, types.Bold(line[m[2]:m[3]]))
		pos = m[1]
	}
	if pos < len(line) {
		runs = append(runs, types.Plain(line[pos:]))
	}
	return runs
}

// StripBold removes the markers of every bold span in line, leaving the
// visible text.
func StripBold(line string) string {
	return boldSpanPattern.ReplaceAllString(line, "$1")
}
