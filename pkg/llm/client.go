package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Completer is the contract the enrichment layer depends on: given a system
// instruction and a context block, return free text. The reply is expected,
// but not guaranteed, to be parseable as structured data; that judgment
// belongs to the caller.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient constructs a Client from the given configuration.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a system instruction plus a user message and returns the
// first choice's content.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var resp chatResponse
	err := c.postJSON(ctx, c.endpoint, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices in reply")
	}
	return resp.Choices[0].Message.Content, nil
}

// postJSON sends an HTTP POST request to the completions API.
// It marshals the given body as JSON, attaches required headers,
// handles HTTP error codes, and decodes the response JSON into `out`.
func (c *Client) postJSON(ctx context.Context, url string, body any, out any) error {

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d for %s", resp.StatusCode, url)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return nil
}
