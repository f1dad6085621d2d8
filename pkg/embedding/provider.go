package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// InferenceProvider talks to an OpenAI-compatible /embeddings endpoint.
type InferenceProvider struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewInferenceProvider constructs a Provider from the given configuration.
func NewInferenceProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &InferenceProvider{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second,
		},
	}, nil
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// CreateEmbeddings embeds the given texts in one request. The endpoint
// returns data entries with explicit indices; the result is re-ordered by
// index so callers can rely on input order.
func (p *InferenceProvider) CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}

	var resp embeddingsResponse
	err := p.postJSON(ctx, p.endpoint, embeddingsRequest{
		Model: p.model,
		Input: texts,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
