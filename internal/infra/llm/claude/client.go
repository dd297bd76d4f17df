package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 2048
)

// Options configures the client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature *float32
	MaxTokens   int
}

// Client generates text through the Anthropic messages API.
type Client struct {
	api         anthropic.Client
	maxTokens   int64
	temperature *float32
}

// NewClient constructs a Claude client. SDK retries are disabled; callers decide what to retry.
func NewClient(apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("claude api key cannot be empty")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return &Client{
		api:         anthropic.NewClient(reqOpts...),
		maxTokens:   int64(maxTokens),
		temperature: opts.Temperature,
	}, nil
}

// Generate sends prompt as a single user message and joins the returned text blocks.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.temperature != nil {
		params.Temperature = anthropic.Float(float64(*c.temperature))
	}
	message, err := c.api.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("claude model %s: %w: %v", model, summarizer.ErrModelUnavailable, err)
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var builder strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			builder.WriteString(text.Text)
		}
	}
	return builder.String(), nil
}

var _ summarizer.Generator = (*Client)(nil)
