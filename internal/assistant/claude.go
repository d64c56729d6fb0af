// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/report-engine/internal/httputil"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const (
	claudeAPIVersion   = "2023-06-01"
	defaultClaudeModel = "claude-sonnet-4-5-20250929"
)

// ClaudeBackend calls the Claude Messages API.
type ClaudeBackend struct {
	APIKey       string
	Model        string
	MaxTokens    int
	Instructions string
	UserAgent    string
	Client       *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content    []claudeContent `json:"content"`
	StopReason string          `json:"stop_reason"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends the rendered prompt and returns the concatenated text blocks
// of the reply.
func (c *ClaudeBackend) Generate(ctx context.Context, req Request) (string, error) {
	prompt, err := RenderPrompt(req)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := c.Model
	if model == "" {
		model = defaultClaudeModel
	}
	header := http.Header{}
	header.Set("x-api-key", c.APIKey)
	header.Set("anthropic-version", claudeAPIVersion)
	if c.UserAgent != "" {
		header.Set("User-Agent", c.UserAgent)
	}

	var cResp claudeResponse
	err = httputil.PostJSON(ctx, c.Client, "Claude API", claudeAPIURL, header, claudeRequest{
		Model:     model,
		MaxTokens: maxTokensOr(c.MaxTokens),
		System:    instructionsOr(c.Instructions),
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}, &cResp)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyReply
	}
	return b.String(), nil
}
