// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var csvExtensions = []string{".csv"}

// CSVFile extracts comma-separated files. The first row is the header; every
// following record becomes a block of "header: value" lines separated by a
// blank line. Empty cells are omitted.
type CSVFile struct{}

func (CSVFile) Name() string                   { return "csv" }
func (CSVFile) Extensions() []string           { return csvExtensions }
func (CSVFile) CanHandle(filename string) bool { return hasExt(filename, csvExtensions) }

func (CSVFile) Extract(ctx context.Context, r io.Reader) (string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var b strings.Builder
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading csv row %d: %w", row, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		for i, v := range rec {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			b.WriteString(columnName(header, i))
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func columnName(header []string, i int) string {
	if i < len(header) && header[i] != "" {
		return header[i]
	}
	return fmt.Sprintf("column %d", i+1)
}
