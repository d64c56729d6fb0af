// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/report-engine/pkg/types"
)

// markdownEngine renders report Markdown. Raw HTML in the assistant's reply
// is not passed through. Single line breaks are kept as breaks because the
// assistant writes one statement per line.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderHTML renders normalized Markdown to an HTML fragment.
func RenderHTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// HTMLWriter writes a standalone HTML page.
type HTMLWriter struct{}

func (HTMLWriter) Format() string      { return FormatHTML }
func (HTMLWriter) Extension() string   { return ".html" }
func (HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLWriter) Write(w io.Writer, r *types.Report) error {
	body, err := RenderHTML(r.Markdown)
	if err != nil {
		return err
	}
	var generated string
	if !r.GeneratedAt.IsZero() {
		generated = r.GeneratedAt.Format("02 January 2006 15:04")
	}
	return pageTmpl.Execute(w, struct {
		Title     string
		Generated string
		Body      template.HTML
		Footer    string
	}{r.Title, generated, body, r.Footer})
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Calibri, Arial, sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; color: #222; }
h1 { margin-bottom: 0; }
h2 { color: #1f3864; margin-top: 1.5rem; }
.generated { color: #595959; font-style: italic; }
footer { margin-top: 3rem; border-top: 1px solid #ccc; padding-top: .5rem; color: #7f7f7f; font-size: .85rem; text-align: center; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
{{- with .Generated}}
<p class="generated">{{.}}</p>
{{- end}}
</header>
<main>
{{.Body}}
</main>
{{- with .Footer}}
<footer>{{.}}</footer>
{{- end}}
</body>
</html>
`))
