// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assistant sends client data to a hosted AI assistant and returns
// the raw text of its reply. A failed call is reported to the caller and
// never retried; the user decides whether to try again.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/report-engine/pkg/types"
)

const (
	defaultMaxTokens = 4096
	defaultTimeout   = 5 * time.Minute
)

// ErrEmptyReply is returned when the assistant answers without any text.
var ErrEmptyReply = errors.New("assistant returned an empty reply")

// ErrNoAPIKey is returned by New when no API key is configured.
var ErrNoAPIKey = errors.New("assistant API key is not set")

// Request is one report request.
type Request struct {
	// ClientInput is the text extracted from the client data file.
	ClientInput string

	// Today is injected into the prompt so the report is dated.
	Today time.Time
}

// Assistant produces a report reply for a request.
type Assistant interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// New returns the backend for cfg.Provider. An empty provider selects Claude.
func New(cfg types.AssistantConfig) (Assistant, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case types.ProviderClaude, "":
		return &ClaudeBackend{
			APIKey:       cfg.APIKey,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Instructions: cfg.Instructions,
			UserAgent:    cfg.UserAgent,
			Client:       client,
		}, nil
	case types.ProviderOpenAI:
		return &OpenAIBackend{
			APIKey:       cfg.APIKey,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Instructions: cfg.Instructions,
			UserAgent:    cfg.UserAgent,
			Client:       client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q (want %s or %s)",
			cfg.Provider, types.ProviderClaude, types.ProviderOpenAI)
	}
}

func maxTokensOr(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

