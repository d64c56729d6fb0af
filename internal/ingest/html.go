// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlExtensions = []string{".html", ".htm"}

// blockSelector lists elements whose text is emitted as its own line.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, td, th, pre, blockquote, dt, dd"

// HTMLFile extracts the visible text of an HTML document. Script, style and
// template content is dropped. Block elements become separate lines; a
// document without block elements yields its whole body text.
type HTMLFile struct{}

func (HTMLFile) Name() string                   { return "html" }
func (HTMLFile) Extensions() []string           { return htmlExtensions }
func (HTMLFile) CanHandle(filename string) bool { return hasExt(filename, htmlExtensions) }

func (HTMLFile) Extract(_ context.Context, r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript, template, head").Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are emitted by their innermost element.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := collapseSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return collapseSpace(doc.Find("body").Text()), nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
