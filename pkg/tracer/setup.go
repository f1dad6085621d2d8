package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger defines the interface for logging operations in the tracer package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider. The worker opens one span per
// consumed message and threads the trace through retries via the carrier
// helpers in utils.go. Safe for concurrent use.
type Tracer struct {
	tracer *trace.TracerProvider
	logger Logger
}

// NewClient sets up the OpenTelemetry provider and registers it globally.
// When export is enabled, spans are batched to the OTLP HTTP endpoint taken
// from the standard OTEL_EXPORTER_* environment; a worker that cannot reach
// its trace backend at startup is not allowed to run blind, so that failure
// is fatal. With export disabled, spans still propagate but are not shipped.
func NewClient(cfg Config, logger Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			logger.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{tracer: tp, logger: logger}
}
