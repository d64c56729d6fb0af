// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns an assistant's free-text reply into normalized
// Markdown for display and a structured DocumentModel for document writers.
// The reply uses a loose Markdown dialect: **bold** spans, headings written
// as whole-line bold or "## " lines, and "- " bullets.
//
// Every function in this file and document.go is pure and total over all
// string inputs.
package convert

import (
	"regexp"
	"strings"
)

const (
	headingPrefix = "## "
	bulletPrefix  = "- "
	boldMarker    = "**"
)

// boldSpanPattern matches two asterisks, non-empty non-greedy text, two asterisks.
var boldSpanPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// NormalizeLineEndings converts \r\n and lone \r line breaks to \n.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Normalize rewrites every line wrapped entirely in ** markers as a "## "
// heading and makes exactly one blank line follow each heading line. Runs of
// blank lines after a heading collapse to one; a missing blank line is
// inserted, including after a final heading. All other lines, inline bold
// markers included, are left as they are.
//
// Normalize is idempotent.
func Normalize(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines)+4)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if inner, ok := wrappedHeading(line); ok {
			line = headingPrefix + inner
		} else if !strings.HasPrefix(line, headingPrefix) {
			out = append(out, line)
			continue
		}

		out = append(out, line, "")
		for i+1 < len(lines) && isBlank(lines[i+1]) {
			i++
		}
	}

	return strings.Join(out, "\n")
}

// splitLines normalizes line endings and splits text into lines. The empty
// string has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(NormalizeLineEndings(text), "\n")
}

// wrappedHeading reports whether line consists of a single **...** span and
// nothing else apart from surrounding whitespace. It returns the trimmed
// inner text.
func wrappedHeading(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) <= 2*len(boldMarker) || !strings.HasPrefix(t, boldMarker) || !strings.HasSuffix(t, boldMarker) {
		return "", false
	}
	inner := t[len(boldMarker) : len(t)-len(boldMarker)]
	if strings.Contains(inner, boldMarker) {
		return "", false
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return "", false
	}
	return inner, true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
