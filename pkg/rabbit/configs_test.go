package rabbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("RABBITMQ_HOST", "")
	t.Setenv("RABBITMQ_PORT", "")
	t.Setenv("RABBITMQ_PREFETCH_COUNT", "")
	t.Setenv("RABBITMQ_DLQ_EXCHANGE", "")

	cfg := NewConfigFromEnv()

	assert.Equal(t, "localhost", cfg.Connection.Host)
	assert.Equal(t, uint(5672), cfg.Connection.Port)
	assert.Equal(t, 1, cfg.Channel.PrefetchCount)
	assert.True(t, cfg.Channel.IsConsumer)

	// No dead-letter topology unless explicitly configured.
	assert.Empty(t, cfg.DeadLetter.ExchangeName)
	assert.Zero(t, cfg.DeadLetter.Ttl)
}

func TestNewConfigFromEnvDeadLetter(t *testing.T) {
	t.Setenv("RABBITMQ_DLQ_EXCHANGE", "analysis-dead")
	t.Setenv("RABBITMQ_DLQ_TTL_SECONDS", "900")

	cfg := NewConfigFromEnv()

	require.Equal(t, "analysis-dead", cfg.DeadLetter.ExchangeName)
	assert.Equal(t, "analysis-jobs-dlq", cfg.DeadLetter.QueueName)
	assert.Equal(t, "analysis.jobs.dead", cfg.DeadLetter.RoutingKey)
	assert.Equal(t, 900, cfg.DeadLetter.Ttl)
}

func TestNewConfigFromEnvDeadLetterOverrides(t *testing.T) {
	t.Setenv("RABBITMQ_DLQ_EXCHANGE", "analysis-dead")
	t.Setenv("RABBITMQ_DLQ_QUEUE", "parked-jobs")
	t.Setenv("RABBITMQ_DLQ_ROUTING_KEY", "parked")

	cfg := NewConfigFromEnv()

	assert.Equal(t, "parked-jobs", cfg.DeadLetter.QueueName)
	assert.Equal(t, "parked", cfg.DeadLetter.RoutingKey)
	assert.Equal(t, 3600, cfg.DeadLetter.Ttl, "ttl falls back to an hour")
}
