// Package llm provides an OpenAI-compatible generation client
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	perr "mingle/internal/platform/errors"
	"mingle/internal/platform/logger"

	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 60 * time.Second

// Options configures the Client
type Options struct {
	// BaseURL points at any OpenAI-compatible provider, empty means api.openai.com
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Temperature for generation, 0 means provider default
	Temperature float32
}

// Model is one entry from the provider's model listing
type Model struct {
	ID      string
	OwnedBy string
}

// Client wraps the provider SDK behind a small surface
type Client struct {
	api  *openai.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	cfg := openai.DefaultConfig(o.APIKey)
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	return &Client{
		api:  openai.NewClientWithConfig(cfg),
		opts: o,
		log:  *logger.Named("llm"),
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool { return c.opts.APIKey != "" }

// Generate runs one chat completion against the given model and returns the raw text
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if !c.Enabled() {
		return "", perr.Configf("llm api key not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		return "", mapError(err, "llm completion failed")
	}
	c.log.Debug().Str("model", model).Dur("latency", time.Since(start)).Msg("llm completion")

	if len(resp.Choices) == 0 {
		return "", perr.Unavailablef("llm returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the provider's model listing
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	if !c.Enabled() {
		return nil, perr.Configf("llm api key not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, mapError(err, "llm list models failed")
	}
	out := make([]Model, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, Model{ID: m.ID, OwnedBy: m.OwnedBy})
	}
	return out, nil
}

// IsModelNotFound reports whether err is the provider saying the requested
// model does not exist or is unavailable. Only explicit signals count; a
// generic failure must not trigger a fallback model
func IsModelNotFound(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.HTTPStatusCode == 404 {
		return true
	}
	if code, ok := apiErr.Code.(string); ok && code == "model_not_found" {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "model") &&
		(strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist") ||
			strings.Contains(msg, "decommissioned"))
}

// mapError converts SDK errors into project errors while keeping the cause
// for predicates like IsModelNotFound
func mapError(err error, msg string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return perr.Wrap(err, perr.ErrorCodeConfig, "llm api key rejected")
		case 429:
			return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "llm rate limited")
		}
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
}
