package llm

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Endpoint is the chat-completions endpoint (OpenAI-compatible).
	Endpoint string

	// APIKey authenticates requests when the endpoint requires it.
	APIKey string

	// Model is the model identifier sent with every request.
	Model string

	// Temperature for generation. Enrichment wants deterministic output,
	// so this defaults to 0.
	Temperature float64

	// HTTPTimeoutS is the http timeout in seconds (default 120; generation
	// is slow compared to retrieval).
	HTTPTimeoutS int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() *Config {
	timeout := 120
	if v := os.Getenv("LLM_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	temperature := 0.0
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			temperature = f
		}
	}
	return &Config{
		Endpoint:     getenvDefault("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		APIKey:       os.Getenv("LLM_API_KEY"),
		Model:        getenvDefault("LLM_MODEL", "gpt-4o-mini"),
		Temperature:  temperature,
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
		return fmt.Errorf("llm client requires LLM_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("llm client requires LLM_MODEL")
	}
	return nil
}
