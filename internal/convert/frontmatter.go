// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"
)

// footerRule separates the report body from its footer in saved Markdown.
const footerRule = "---"

// Frontmatter is the YAML header written at the top of saved Markdown reports.
type Frontmatter struct {
	ReportID  string `yaml:"report_id,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Source    string `yaml:"source,omitempty"`
	Generated string `yaml:"generated_at,omitempty"`
	Footer    string `yaml:"footer,omitempty"`
}

// FrontmatterFor builds the header for a report.
func FrontmatterFor(info ReportInfo) Frontmatter {
	fm := Frontmatter{
		ReportID: info.ID,
		Title:    info.Title,
		Source:   info.SourceName,
		Footer:   info.Footer,
	}
	if !info.GeneratedAt.IsZero() {
		fm.Generated = info.GeneratedAt.UTC().Format(time.RFC3339)
	}
	return fm
}

// apply fills empty fields of info from the header.
func (fm Frontmatter) apply(info ReportInfo) ReportInfo {
	if fm.ReportID != "" {
		info.ID = fm.ReportID
	}
	if fm.Title != "" {
		info.Title = fm.Title
	}
	if fm.Source != "" {
		info.SourceName = fm.Source
	}
	if fm.Footer != "" {
		info.Footer = fm.Footer
	}
	if t, err := time.Parse(time.RFC3339, fm.Generated); err == nil {
		info.GeneratedAt = t
	}
	return info
}

// AddFrontmatter prepends a YAML header to body.
func AddFrontmatter(fm Frontmatter, body string) (string, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// SplitFrontmatter separates an optional YAML header from the report body.
// Text without a header is returned unchanged. Blank lines between the
// header and the body are dropped.
func SplitFrontmatter(src []byte) (Frontmatter, []byte, error) {
	var fm Frontmatter
	if !bytes.HasPrefix(src, []byte("---")) {
		return fm, src, nil
	}
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return Frontmatter{}, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, bytes.TrimLeft(body, "\r\n"), nil
}

// StripFooter removes a trailing footer block written by the Markdown
// writer: a "---" rule, blank lines, and the footer in italics, together
// with the blank lines and trailing newline before the rule. Text without
// that block is returned unchanged.
func StripFooter(body, footer string) string {
	if footer == "" {
		return body
	}
	lines := splitLines(strings.TrimRight(body, "\r\n"))
	n := len(lines)
	if n < 2 || strings.TrimSpace(lines[n-1]) != "*"+footer+"*" {
		return body
	}
	i := n - 2
	for i >= 0 && isBlank(lines[i]) {
		i--
	}
	if i < 0 || strings.TrimSpace(lines[i]) != footerRule {
		return body
	}
	for i > 0 && isBlank(lines[i-1]) {
		i--
	}
	return strings.Join(lines[:i], "\n")
}
