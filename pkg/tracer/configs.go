package tracer

import "os"

// Config controls how the tracer provider is set up.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string

	// AppEnv is the deployment environment tag (e.g. "production", "staging").
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. When false, spans are
	// created but never exported; useful for local development.
	EnableExport bool
}

// NewConfigFromEnv reads the tracer configuration from environment variables.
// The OTLP exporter itself is configured through the standard
// OTEL_EXPORTER_OTLP_* variables.
func NewConfigFromEnv() Config {
	serviceName := os.Getenv("TRACER_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "medmatch-worker"
	}
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	return Config{
		ServiceName:  serviceName,
		AppEnv:       appEnv,
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
