// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/internal/ingest"
)

// readZip returns the parts of a zip archive by name.
func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = string(b)
	}
	return parts
}

func wellFormed(t *testing.T, name, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err, "%s is not well-formed XML", name)
	}
}

func TestDocxWriter(t *testing.T) {
	r, err := Build(completedSession(sampleMarkdown), Options{Footer: "Fortis & Co"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DocxWriter{}.Write(&buf, r))
	parts := readZip(t, buf.Bytes())

	for _, name := range []string{
		"[Content_Types].xml", "_rels/.rels", "docProps/core.xml",
		"word/_rels/document.xml.rels", "word/styles.xml", "word/numbering.xml",
		"word/footer1.xml", "word/document.xml",
	} {
		require.Contains(t, parts, name)
		wellFormed(t, name, parts[name])
	}

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, `<w:pStyle w:val="Title"/></w:pPr><w:r><w:t xml:space="preserve">Financial Report</w:t>`)
	assert.Contains(t, doc, `<w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t xml:space="preserve">Summary</w:t>`)
	assert.Contains(t, doc, `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">£5,000</w:t></w:r>`)
	assert.Contains(t, doc, `saved &amp; growing.`)
	assert.Contains(t, doc, `Review &lt;pension&gt;`)
	assert.Contains(t, doc, `<w:numId w:val="1"/>`)
	assert.Equal(t, 2, strings.Count(doc, `<w:pStyle w:val="ListBullet"/>`))
	assert.Equal(t, 2, strings.Count(doc, `<w:p/>`))
	assert.Contains(t, doc, `r:id="rId3"`)

	assert.Contains(t, parts["word/footer1.xml"], "Fortis &amp; Co")
	assert.Contains(t, parts["docProps/core.xml"], "2025-03-05T14:07:09Z")
}

func TestDocxWriterReadableByExtractor(t *testing.T) {
	r, err := Build(completedSession(sampleMarkdown), Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, DocxWriter{}.Write(&buf, r))

	text, err := ingest.DocxFile{}.Extract(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "Financial Report\n05 March 2025\n"+
		"Summary\n\nYou have £5,000 saved & growing.\nNext Steps\n\nOpen an ISA\nReview <pension>\n", text)
}

func TestMarkdownWriter(t *testing.T) {
	r, err := Build(completedSession("**Summary**\n\nAll good.\n- Keep **saving**"), Options{Footer: "Fortis"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, MarkdownWriter{}.Write(&buf, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "All good.")
	assert.Contains(t, out, "- Keep **saving**")
	assert.Contains(t, out, "Fortis")

	fm, body, err := convert.SplitFrontmatter(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, r.ID, fm.ReportID)
	assert.Equal(t, "Financial Report", fm.Title)
	assert.Equal(t, "client.txt", fm.Source)
	assert.Equal(t, "2025-03-05T14:07:09Z", fm.Generated)
	assert.True(t, strings.HasPrefix(string(body), "## Summary"))
}

func TestMarkdownWriterOutputIsStable(t *testing.T) {
	r, err := Build(completedSession(sampleMarkdown), Options{})
	require.NoError(t, err)

	var first bytes.Buffer
	require.NoError(t, MarkdownWriter{}.Write(&first, r))
	_, body, err := convert.SplitFrontmatter(first.Bytes())
	require.NoError(t, err)

	res := convert.Convert(string(body))
	assert.Equal(t, res.Markdown, convert.Normalize(res.Markdown))
	assert.Equal(t, r.Document.Blocks[0], res.Document.Blocks[0])
}

func TestMarkdownWriterConvertsAgainWithFooter(t *testing.T) {
	const footer = "Prepared by Fortis"
	r, err := Build(completedSession(sampleMarkdown), Options{Footer: footer})
	require.NoError(t, err)

	dir := t.TempDir()
	saved := filepath.Join(dir, "reply.md")
	var first bytes.Buffer
	require.NoError(t, MarkdownWriter{}.Write(&first, r))
	require.NoError(t, os.WriteFile(saved, first.Bytes(), 0o644))

	outDir := filepath.Join(dir, "out")
	writers := []convert.Writer{MarkdownWriter{}, DocxWriter{}}
	status := convert.ConvertFile(saved, outDir, writers, convert.ReportInfo{Footer: footer}, io.Discard)
	require.Equal(t, convert.StatusConverted, status)

	again, err := os.ReadFile(filepath.Join(outDir, "reply.md"))
	require.NoError(t, err)
	fm, body, err := convert.SplitFrontmatter(again)
	require.NoError(t, err)
	assert.Equal(t, footer, fm.Footer)
	assert.Equal(t, 1, strings.Count(string(body), footer), "footer written once")
	assert.Equal(t, 1, strings.Count(string(body), "\n---\n"), "one rule above the footer")

	_, firstBody, err := convert.SplitFrontmatter(first.Bytes())
	require.NoError(t, err)
	assert.Equal(t, string(firstBody), string(body))

	docx, err := os.ReadFile(filepath.Join(outDir, "reply.docx"))
	require.NoError(t, err)
	parts := readZip(t, docx)
	assert.NotContains(t, parts["word/document.xml"], footer)
	assert.NotContains(t, parts["word/document.xml"], ">---<")
	assert.Contains(t, parts["word/footer1.xml"], footer)
}

func TestHTMLWriter(t *testing.T) {
	md := sampleMarkdown + "\n<script>alert(1)</script>"
	r, err := Build(completedSession(md), Options{Footer: "Fortis <Advisers>"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HTMLWriter{}.Write(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "<title>Financial Report</title>")
	assert.Contains(t, out, `<h2 id="summary">Summary</h2>`)
	assert.Contains(t, out, "<strong>£5,000</strong>")
	assert.Contains(t, out, "<li>Open an <strong>ISA</strong></li>")
	assert.Contains(t, out, "05 March 2025 14:07")
	assert.Contains(t, out, "<footer>Fortis &lt;Advisers&gt;</footer>")
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestRenderHTML(t *testing.T) {
	got, err := RenderHTML("line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "<p>line one<br>\nline two</p>\n", string(got))
}
