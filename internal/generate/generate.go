// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the report workflow for one client data file:
// extract its text, ask the assistant for a report, normalize the reply, and
// record every step on a ReportSession.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/report-engine/internal/assistant"
	"github.com/pdiddy/report-engine/internal/convert"
	"github.com/pdiddy/report-engine/internal/ingest"
	"github.com/pdiddy/report-engine/internal/session"
	"github.com/pdiddy/report-engine/pkg/types"
)

// ErrAssistantFailed marks failures of the assistant call so callers can
// tell them apart from bad input.
var ErrAssistantFailed = errors.New("the assistant failed to generate a report")

// Generator holds the collaborators of the workflow.
type Generator struct {
	Extractors *ingest.Registry
	Assistant  assistant.Assistant
	Sessions   session.Store

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Log receives progress lines. Defaults to io.Discard.
	Log io.Writer
}

// Generate runs the workflow for the file name read from r. The returned
// session is always non-nil once it has been created and is saved in both
// the completed and the failed case. On failure the error is also returned;
// nothing is retried.
func (g *Generator) Generate(ctx context.Context, name string, r io.Reader) (*types.ReportSession, error) {
	log := g.Log
	if log == nil {
		log = io.Discard
	}

	s := session.New(name, g.now())
	if err := g.Sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("recording report request: %w", err)
	}
	fmt.Fprintf(log, "generating: %s (%s)\n", name, s.ID)

	text, err := g.Extractors.Extract(ctx, name, r)
	if err != nil {
		return s, g.fail(ctx, log, s, err)
	}
	fmt.Fprintf(log, "  extracted %d bytes of client data\n", len(text))

	reply, err := g.Assistant.Generate(ctx, assistant.Request{
		ClientInput: text,
		Today:       s.CreatedAt,
	})
	if err != nil {
		return s, g.fail(ctx, log, s, fmt.Errorf("%w: %w", ErrAssistantFailed, err))
	}

	session.Complete(s, reply, convert.Normalize(reply), g.now())
	if err := g.Sessions.Save(ctx, s); err != nil {
		return s, fmt.Errorf("saving report %s: %w", s.ID, err)
	}
	fmt.Fprintf(log, "completed: %s (%s)\n", name, s.ID)
	return s, nil
}

// fail marks s failed and saves it. The session keeps the user-visible
// message; an assistant failure is recorded as ErrAssistantFailed and its
// cause only goes to the log. The save uses a context detached from
// cancellation so an aborted request is still recorded.
func (g *Generator) fail(ctx context.Context, log io.Writer, s *types.ReportSession, cause error) error {
	visible := cause
	if errors.Is(cause, ErrAssistantFailed) {
		visible = ErrAssistantFailed
	}
	session.Fail(s, visible, g.now())
	fmt.Fprintf(log, "failed:    %s (%s): %v\n", s.SourceName, s.ID, cause)
	if err := g.Sessions.Save(context.WithoutCancel(ctx), s); err != nil {
		return errors.Join(cause, fmt.Errorf("saving failed report %s: %w", s.ID, err))
	}
	return cause
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
