// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/report-engine/internal/httputil"
)

// openAIAPIURL is the Chat Completions endpoint. Package-level var for test substitution.
var openAIAPIURL = "https://api.openai.com/v1/chat/completions"

const defaultOpenAIModel = "gpt-4o"

// OpenAIBackend calls the OpenAI Chat Completions API.
type OpenAIBackend struct {
	APIKey       string
	Model        string
	MaxTokens    int
	Instructions string
	UserAgent    string
	Client       *http.Client
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

// Generate sends the instructions as the system message and the rendered
// prompt as the user message, returning the first choice's content.
func (o *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	prompt, err := RenderPrompt(req)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := o.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+o.APIKey)
	if o.UserAgent != "" {
		header.Set("User-Agent", o.UserAgent)
	}

	var oResp openAIResponse
	err = httputil.PostJSON(ctx, o.Client, "OpenAI API", openAIAPIURL, header, openAIRequest{
		Model:     model,
		MaxTokens: maxTokensOr(o.MaxTokens),
		Messages: []openAIMessage{
			{Role: "system", Content: instructionsOr(o.Instructions)},
			{Role: "user", Content: prompt},
		},
	}, &oResp)
	if err != nil {
		return "", err
	}
	if len(oResp.Choices) == 0 || strings.TrimSpace(oResp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return oResp.Choices[0].Message.Content, nil
}
