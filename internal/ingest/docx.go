// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var docxExtensions = []string{".docx"}

const docxBodyPart = "word/document.xml"

// DocxFile extracts the paragraph text of a Word document, one line per
// paragraph. Tabs and breaks inside a paragraph become a tab and a newline.
type DocxFile struct{}

func (DocxFile) Name() string                   { return "docx" }
func (DocxFile) Extensions() []string           { return docxExtensions }
func (DocxFile) CanHandle(filename string) bool { return hasExt(filename, docxExtensions) }

func (DocxFile) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading docx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", docxBodyPart, err)
		}
		defer rc.Close()
		return docxText(ctx, rc)
	}
	return "", fmt.Errorf("docx archive has no %s", docxBodyPart)
}

// docxText walks the WordprocessingML token stream collecting w:t text.
func docxText(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		b      strings.Builder
		inText bool
		inPPr  bool // paragraph properties declare tab stops, not tabs
	)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", docxBodyPart, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "pPr":
				inPPr = true
			case "tab":
				if !inPPr {
					b.WriteString("\t")
				}
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "pPr":
				inPPr = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
