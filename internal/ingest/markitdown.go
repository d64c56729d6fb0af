// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/report-engine/internal/container"
)

// ImageMarkitdown is the container image used for PDF and slide decks.
const ImageMarkitdown = "markitdown:latest"

var markitdownExtensions = []string{".pdf", ".pptx"}

// Markitdown extracts formats without a native Go reader by piping them
// through the markitdown container image.
type Markitdown struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdown returns an extractor that runs image on rt. It verifies that
// the image exists locally before returning.
func NewMarkitdown(ctx context.Context, rt container.Runtime, image string) (*Markitdown, error) {
	if image == "" {
		image = ImageMarkitdown
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &Markitdown{runtime: rt, image: image}, nil
}

func (m *Markitdown) Name() string                   { return "markitdown" }
func (m *Markitdown) Extensions() []string           { return markitdownExtensions }
func (m *Markitdown) CanHandle(filename string) bool { return hasExt(filename, markitdownExtensions) }

func (m *Markitdown) Extract(ctx context.Context, r io.Reader) (string, error) {
	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, r, &out); err != nil {
		return "", fmt.Errorf("converting with markitdown: %w", err)
	}
	return out.String(), nil
}
