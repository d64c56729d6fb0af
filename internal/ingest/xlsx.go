// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var xlsxExtensions = []string{".xlsx", ".xlsm"}

// XLSXFile extracts every sheet of an Excel workbook. Each sheet starts with
// a "## <sheet name>" line followed by its non-empty rows, cells joined by tabs.
type XLSXFile struct{}

func (XLSXFile) Name() string                   { return "xlsx" }
func (XLSXFile) Extensions() []string           { return xlsxExtensions }
func (XLSXFile) CanHandle(filename string) bool { return hasExt(filename, xlsxExtensions) }

func (XLSXFile) Extract(ctx context.Context, r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", sheet)
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t ")
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
