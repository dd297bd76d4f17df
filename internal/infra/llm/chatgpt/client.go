package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

const defaultTimeout = 60 * time.Second

// Options configures the client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature *float32
}

// Client generates text through the OpenAI chat completions API.
type Client struct {
	api         *openai.Client
	temperature *float32
}

// NewClient constructs a ChatGPT client.
func NewClient(apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chatgpt api key cannot be empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: openai.NewClientWithConfig(cfg), temperature: opts.Temperature}, nil
}

// Generate sends prompt as a single user message. Unknown models are reported as
// summarizer.ErrModelUnavailable.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	}
	if c.temperature != nil {
		req.Temperature = *c.temperature
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return "", fmt.Errorf("chatgpt model %s: %w: %v", model, summarizer.ErrModelUnavailable, err)
		}
		return "", fmt.Errorf("chatgpt request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

var _ summarizer.Generator = (*Client)(nil)
