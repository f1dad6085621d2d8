package embedding

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Endpoint is the embeddings endpoint (OpenAI-compatible).
	Endpoint string

	// APIKey authenticates requests when the endpoint requires it.
	APIKey string

	// Model is the embedding model identifier sent with every request.
	Model string

	// HTTPTimeoutS is the http timeout in seconds (default 30).
	HTTPTimeoutS int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	return &Config{
		Endpoint:     getenvDefault("EMBEDDING_ENDPOINT", "https://api.openai.com/v1/embeddings"),
		APIKey:       os.Getenv("EMBEDDING_API_KEY"),
		Model:        getenvDefault("EMBEDDING_MODEL", "text-embedding-3-small"),
		HTTPTimeoutS: timeout,
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding provider requires EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding provider requires EMBEDDING_MODEL")
	}
	return nil
}
