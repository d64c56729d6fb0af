// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/pkg/types"
)

// MarkdownWriter writes the report as Markdown with a YAML frontmatter
// header. The body is regenerated from the DocumentModel, so whole-line bold
// headings come out as "## " headings. The footer is written both in the
// header and as a closing italic line below a rule; convert.ConvertFile
// reads the header and drops that closing block, so a saved file can be
// converted again without repeating the footer.
type MarkdownWriter struct{}

func (MarkdownWriter) Format() string      { return FormatMarkdown }
func (MarkdownWriter) Extension() string   { return ".md" }
func (MarkdownWriter) ContentType() string { return "text/markdown; charset=utf-8" }

func (MarkdownWriter) Write(w io.Writer, r *types.Report) error {
	var body bytes.Buffer
	md := markdown.NewMarkdown(&body)

	for _, blk := range r.Document.Blocks {
		switch blk.Kind {
		case types.BlockHeading:
			md.H2(runsMarkdown(blk.Runs, markdown.Bold))
		case types.BlockBullet:
			md.BulletList(runsMarkdown(blk.Runs, markdown.Bold))
		case types.BlockBlank:
			md.PlainText("")
		default:
			md.PlainText(runsMarkdown(blk.Runs, markdown.Bold))
		}
	}
	if r.Footer != "" {
		md.PlainText("")
		md.HorizontalRule()
		md.PlainText("")
		md.PlainText(markdown.Italic(r.Footer))
	}
	if err := md.Build(); err != nil {
		return fmt.Errorf("building markdown: %w", err)
	}

	out, err := convert.AddFrontmatter(convert.FrontmatterFor(convert.ReportInfo{
		ID:          r.ID,
		Title:       r.Title,
		SourceName:  r.SourceName,
		Footer:      r.Footer,
		GeneratedAt: r.GeneratedAt,
	}), body.String()+"\n")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
