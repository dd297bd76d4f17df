package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 60 * time.Second
)

// Part is one text segment of a content block.
type Part struct {
	Text string `json:"text"`
}

// Content is a role tagged list of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig tunes sampling.
type GenerationConfig struct {
	Temperature *float32 `json:"temperature,omitempty"`
}

// GenerateContentRequest is the payload sent to models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerateContentResponse captures the fields the summarizer reads.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Text joins the parts of the first candidate.
func (r GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	return builder.String()
}

// Options configures the client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Temperature *float32
}

// Client performs HTTP requests to the Gemini API.
type Client struct {
	apiKey      string
	baseURL     string
	temperature *float32
	httpClient  *http.Client
}

// NewClient constructs a Gemini client.
func NewClient(apiKey string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: opts.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Generate sends a single user turn to model and returns the text of the first candidate.
// A 404 is reported as summarizer.ErrModelUnavailable.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}
	if c.temperature != nil {
		req.GenerationConfig = &GenerationConfig{Temperature: c.temperature}
	}
	out, err := c.GenerateContent(ctx, model, req)
	if err != nil {
		return "", err
	}
	return out.Text(), nil
}

// GenerateContent triggers a sync generateContent call.
func (c *Client) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (GenerateContentResponse, error) {
	var out GenerateContentResponse
	body, err := c.doRequest(ctx, model, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode generate content: %w", err)
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, model string, req GenerateContentRequest) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, model, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gemini model %s: %w: body=%s", model, summarizer.ErrModelUnavailable, string(payload))
	}
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(payload))
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) newHTTPRequest(ctx context.Context, model string, req GenerateContentRequest) (*http.Request, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode generate content request: %w", err)
	}
	endpoint := c.baseURL + "/models/" + url.PathEscape(model) + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate content request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

var _ summarizer.Generator = (*Client)(nil)
