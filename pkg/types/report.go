// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReportStatus tracks a report request through the generation workflow.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// ReportSession records one report-generation request. It is passed
// explicitly between the workflow, the stores, and the web handlers and is
// keyed by ID.
type ReportSession struct {
	// ID identifies the request (a UUID).
	ID string `json:"id" yaml:"id"`

	// SourceName is the name of the uploaded client data file.
	SourceName string `json:"source_name" yaml:"source_name"`

	// Status is pending, completed, or failed.
	Status ReportStatus `json:"status" yaml:"status"`

	// RawText is the assistant's unprocessed reply.
	RawText string `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`

	// Markdown is RawText after heading and spacing normalization.
	Markdown string `json:"markdown,omitempty" yaml:"markdown,omitempty"`

	// Error is the user-visible failure message. Empty unless Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CreatedAt is when the request was received.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// CompletedAt is when the request finished, successfully or not.
	CompletedAt time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// Done reports whether the session has reached a terminal status.
func (s *ReportSession) Done() bool {
	return s.Status == ReportCompleted || s.Status == ReportFailed
}

// Report is everything a document writer needs to serialize one report.
type Report struct {
	// ID is the originating session ID, if any.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the document title (e.g. "Financial Report").
	Title string `json:"title" yaml:"title"`

	// SourceName is the client data file the report was generated from.
	SourceName string `json:"source_name,omitempty" yaml:"source_name,omitempty"`

	// GeneratedAt is when the assistant reply was received.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Footer is the branding line placed in the document footer.
	Footer string `json:"footer,omitempty" yaml:"footer,omitempty"`

	// Markdown is the normalized Markdown for on-screen display.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Document is the structured model derived from Markdown.
	Document DocumentModel `json:"document" yaml:"document"`
}
