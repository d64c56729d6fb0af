// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "report-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AssistantProvider identifies the hosted assistant API.
type AssistantProvider string

const (
	ProviderClaude AssistantProvider = "claude"
	ProviderOpenAI AssistantProvider = "openai"
)

// AIConfig holds settings for calls to a Generative AI API.
type AIConfig struct {
	// Provider selects the API: claude or openai.
	Provider AssistantProvider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens bounds the length of the assistant's reply (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Instructions is the system prompt describing the report to write.
	Instructions string `json:"instructions" yaml:"instructions"`
}

// AssistantConfig holds settings for the assistant collaborator.
type AssistantConfig struct {
	HTTPConfig `yaml:",inline"`
	AIConfig   `yaml:",inline"`
}

// OutputConfig controls how reports are written to disk.
type OutputConfig struct {
	// Dir is the directory generated documents are written to.
	Dir string `json:"dir" yaml:"dir"`

	// Formats lists the document formats to write: docx, md, html.
	Formats []string `json:"formats" yaml:"formats"`

	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// Footer is the branding line placed in every document footer.
	Footer string `json:"footer" yaml:"footer"`

	// Prefix is the file name prefix (e.g. "financial_report").
	Prefix string `json:"prefix" yaml:"prefix"`
}

// ArchiveBackend selects the ReportSession store.
type ArchiveBackend string

const (
	ArchiveMemory ArchiveBackend = "memory"
	ArchiveSQLite ArchiveBackend = "sqlite"
)

// ArchiveConfig holds settings for the ReportSession store.
type ArchiveConfig struct {
	// Backend is memory or sqlite.
	Backend ArchiveBackend `json:"backend" yaml:"backend"`

	// Path is the SQLite database file (sqlite backend only).
	Path string `json:"path" yaml:"path"`
}

// ServeConfig holds settings for the web tool.
type ServeConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the size of an uploaded client data file.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// PipelineConfig groups every component configuration.
type PipelineConfig struct {
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Serve     ServeConfig     `json:"serve" yaml:"serve"`
}
