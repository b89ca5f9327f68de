// Package llm talks to a hosted, OpenAI-compatible chat-completion endpoint
// for note translation and auto-completion.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	Token    string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Client is safe for concurrent use. A Client built without a token is
// valid but every call fails with ErrNotConfigured.
type Client struct {
	api   *openai.Client
	model string
}

func New(cfg Config) *Client {
	c := &Client{model: cfg.Model}
	if cfg.Token == "" {
		return c
	}

	oc := openai.DefaultConfig(cfg.Token)
	oc.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	c.api = openai.NewClientWithConfig(oc)
	return c
}

// Configured reports whether the client holds a credential.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

type chatParams struct {
	system      string
	user        string
	temperature float32
	topP        float32
}

// chat issues exactly one request and returns the first choice's text.
func (c *Client) chat(ctx context.Context, p chatParams) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.system},
			{Role: openai.ChatMessageRoleUser, Content: p.user},
		},
		Temperature: p.temperature,
		TopP:        p.topP,
	})
	if err != nil {
		return "", upstream(err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Message: "model returned no choices"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func upstream(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}
