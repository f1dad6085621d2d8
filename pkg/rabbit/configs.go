package rabbit

import (
	"os"
	"strconv"
)

type Config struct {
	Connection Connection
	Channel    Channel
	DeadLetter DeadLetter
}

type Connection struct {
	Host           string
	Port           uint
	User           string
	Password       string
	IsSSLEnabled   bool
	UseCert        bool
	CACertPath     string
	ClientCertPath string
	ClientKeyPath  string
	ServerName     string
}

type Channel struct {
	ExchangeName     string
	ExchangeType     string
	RoutingKey       string
	QueueName        string
	DelayToReconnect int
	PrefetchCount    int
	IsConsumer       bool
	ContentType      string
}

type DeadLetter struct {
	ExchangeName string
	QueueName    string
	RoutingKey   string
	Ttl          int
}

// NewConfigFromEnv reads the broker configuration from environment variables.
// The worker consumes one message at a time, so the prefetch count defaults
// to 1 unless overridden. Setting RABBITMQ_DLQ_EXCHANGE turns on the
// dead-letter topology; without it the main queue is declared with no
// dead-letter arguments.
func NewConfigFromEnv() Config {
	port := uint(5672)
	if v := os.Getenv("RABBITMQ_PORT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			port = uint(n)
		}
	}
	prefetch := 1
	if v := os.Getenv("RABBITMQ_PREFETCH_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			prefetch = n
		}
	}

	var deadLetter DeadLetter
	if ex := os.Getenv("RABBITMQ_DLQ_EXCHANGE"); ex != "" {
		ttl := 3600
		if v := os.Getenv("RABBITMQ_DLQ_TTL_SECONDS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				ttl = n
			}
		}
		deadLetter = DeadLetter{
			ExchangeName: ex,
			QueueName:    getenvDefault("RABBITMQ_DLQ_QUEUE", "analysis-jobs-dlq"),
			RoutingKey:   getenvDefault("RABBITMQ_DLQ_ROUTING_KEY", "analysis.jobs.dead"),
			Ttl:          ttl,
		}
	}

	return Config{
		DeadLetter: deadLetter,
		Connection: Connection{
			Host:         getenvDefault("RABBITMQ_HOST", "localhost"),
			Port:         port,
			User:         getenvDefault("RABBITMQ_USER", "guest"),
			Password:     getenvDefault("RABBITMQ_PASSWORD", "guest"),
			IsSSLEnabled: os.Getenv("RABBITMQ_SSL_ENABLED") == "true",
		},
		Channel: Channel{
			ExchangeName:  getenvDefault("RABBITMQ_EXCHANGE", "analysis"),
			ExchangeType:  getenvDefault("RABBITMQ_EXCHANGE_TYPE", "direct"),
			RoutingKey:    getenvDefault("RABBITMQ_ROUTING_KEY", "analysis.jobs"),
			QueueName:     getenvDefault("RABBITMQ_QUEUE", "analysis-jobs"),
			PrefetchCount: prefetch,
			IsConsumer:    true,
			ContentType:   "application/json",
		},
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
