// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFor(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"client.txt", "text", false},
		{"notes.MD", "text", false},
		{"accounts.csv", "csv", false},
		{"profile.docx", "docx", false},
		{"holdings.xlsx", "xlsx", false},
		{"summary.html", "html", false},
		{"statement.pdf", "", true},
		{"no-extension", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			e, err := reg.For(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				assert.Contains(t, err.Error(), tt.filename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(&Markitdown{runtime: &fakeRuntime{}, image: ImageMarkitdown})

	e, err := reg.For("statement.pdf")
	require.NoError(t, err)
	assert.Equal(t, "markitdown", e.Name())
	assert.Contains(t, reg.Extensions(), ".pdf")
	assert.Contains(t, reg.Extensions(), ".csv")
}

func TestRegistryExtract(t *testing.T) {
	reg := DefaultRegistry()
	ctx := context.Background()

	got, err := reg.Extract(ctx, "client.txt", strings.NewReader("Name: Ann\r\nAge: 52\r"))
	require.NoError(t, err)
	assert.Equal(t, "Name: Ann\nAge: 52\n", got)

	_, err = reg.Extract(ctx, "blank.txt", strings.NewReader("  \n\t\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.Contains(t, err.Error(), "blank.txt")

	_, err = reg.Extract(ctx, "photo.png", strings.NewReader("x"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestRegistryExtractWrapsExtractorError(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Extract(context.Background(), "broken.docx", strings.NewReader("not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.docx")
	assert.Contains(t, err.Error(), "docx")
}

func TestHasExt(t *testing.T) {
	if !hasExt("A.CSV", csvExtensions) {
		t.Error("hasExt should ignore case")
	}
	if hasExt("a.csv.bak", csvExtensions) {
		t.Error("hasExt should only check the final extension")
	}
}
