package postgres

import (
	"os"
	"time"
)

// Config contains the settings needed to connect to the relational store.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	SSLMode  string
}

// ConnectionDetails tunes the underlying connection pool. Zero values fall
// back to package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConfigFromEnv reads the database configuration from environment variables.
func NewConfigFromEnv() Config {
	return Config{
		Connection: Connection{
			Host:     getenvDefault("POSTGRES_HOST", "localhost"),
			Port:     getenvDefault("POSTGRES_PORT", "5432"),
			User:     getenvDefault("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DbName:   getenvDefault("POSTGRES_DB", "medmatch"),
			SSLMode:  getenvDefault("POSTGRES_SSL_MODE", "disable"),
		},
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
