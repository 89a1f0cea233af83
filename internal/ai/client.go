// Package ai implements the completion requester over an OpenAI-compatible
// chat completions endpoint.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"mentionbot/internal/config"
)

var (
	// ErrNoChoices indicates the service returned zero response choices.
	ErrNoChoices = errors.New("no response choices available")
	// ErrEmptyResponse indicates the first choice carried no text content.
	ErrEmptyResponse = errors.New("received an empty response")
)

// Client generates a completion for free-form text. Implementations must be
// safe for concurrent use.
type Client interface {
	Complete(ctx context.Context, model, text string) (string, error)
}

// OpenAI is a Client backed by the OpenAI chat completions API or any
// endpoint speaking the same wire format.
type OpenAI struct {
	api     *openai.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an OpenAI completion client from the provided configuration.
func New(cfg config.OpenAIConfig, logger *slog.Logger) *OpenAI {
	if logger == nil {
		logger = slog.Default()
	}

	apiConfig := openai.DefaultConfig(cfg.Token)
	apiConfig.BaseURL = cfg.BaseURL

	return &OpenAI{
		api:     openai.NewClientWithConfig(apiConfig),
		timeout: cfg.Timeout,
		logger:  logger.With("component", "ai_client"),
	}
}

// Complete sends a single user-role turn carrying text verbatim to the given
// model and returns the first choice's content. A single attempt is made per
// invocation; there are no retries and no caching.
func (c *OpenAI) Complete(ctx context.Context, model, text string) (string, error) {
	startTime := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyResponse
	}

	c.logger.DebugContext(ctx, "Completion received",
		"model", model,
		"duration_ms", time.Since(startTime).Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens)

	return content, nil
}
