package consumer

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultJobTimeoutSeconds = 180
)

// Config holds the worker's processing knobs.
type Config struct {
	// JobTimeout bounds one message's processing end to end. A timeout is an
	// ordinary failure and goes through the retry policy.
	JobTimeout time.Duration

	// BatchEnrichment switches drug-summary jobs to the single-call batch
	// path instead of one enrichment call per mention.
	BatchEnrichment bool
}

// NewConfigFromEnv builds the worker config from environment variables.
func NewConfigFromEnv() (Config, error) {
	cfg := Config{
		JobTimeout:      defaultJobTimeoutSeconds * time.Second,
		BatchEnrichment: false,
	}

	if v := os.Getenv("WORKER_JOB_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKER_JOB_TIMEOUT_SECONDS: %w", err)
		}
		cfg.JobTimeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("WORKER_BATCH_ENRICHMENT"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKER_BATCH_ENRICHMENT: %w", err)
		}
		cfg.BatchEnrichment = enabled
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive")
	}
	return nil
}
