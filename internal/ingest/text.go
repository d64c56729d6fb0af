// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var textExtensions = []string{".txt", ".md", ".text"}

// TextFile extracts plain text files. UTF-8 is assumed unless a UTF-16 or
// UTF-8 byte order mark is present; the mark is stripped.
type TextFile struct{}

func (TextFile) Name() string                   { return "text" }
func (TextFile) Extensions() []string           { return textExtensions }
func (TextFile) CanHandle(filename string) bool { return hasExt(filename, textExtensions) }

func (TextFile) Extract(_ context.Context, r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(data), nil
}
