package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// SummarizerConfig configures the transcription/summarization service client.
type SummarizerConfig struct {
	// Endpoint is the summarization service URL.
	Endpoint string

	// APIKey authenticates requests when the service requires it.
	APIKey string

	// HTTPTimeoutS is the http timeout in seconds. Transcribing a recording
	// is slow; the default is generous.
	HTTPTimeoutS int
}

// NewSummarizerConfig reads the summarizer configuration from environment
// variables.
func NewSummarizerConfig() SummarizerConfig {
	timeout := 600
	if v := os.Getenv("SUMMARIZER_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	return SummarizerConfig{
		Endpoint:     os.Getenv("SUMMARIZER_ENDPOINT"),
		APIKey:       os.Getenv("SUMMARIZER_API_KEY"),
		HTTPTimeoutS: timeout,
	}
}

// Validate checks the configuration.
func (c SummarizerConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("summarizer requires SUMMARIZER_ENDPOINT")
	}
	return nil
}

// HTTPSummarizer calls the external transcription/summarization service. The
// service pulls the recording from object storage itself; the worker only
// hands over the object key.
type HTTPSummarizer struct {
	cfg        SummarizerConfig
	httpClient *http.Client
}

func NewHTTPSummarizer(cfg SummarizerConfig) (*HTTPSummarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HTTPSummarizer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second,
		},
	}, nil
}

type summarizeRequest struct {
	ObjectKey string `json:"object_key"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// Summarize requests a summary for the named recording.
func (s *HTTPSummarizer) Summarize(ctx context.Context, objectKey string) (string, error) {
	data, err := json.Marshal(summarizeRequest{ObjectKey: objectKey})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %d for %s", resp.StatusCode, s.cfg.Endpoint)
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Summary, nil
}
