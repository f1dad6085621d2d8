// Package tracer provides distributed tracing with OpenTelemetry.
//
// The worker creates one span per consumed message and propagates trace
// context through broker headers: publishers attach the carrier returned by
// GetCarrier to the message headers, and the consumer restores it with
// SetCarrierOnContext before starting its span. Republished retries therefore
// stay on the same trace as the original delivery.
//
// Usage:
//
//	ctx = tracerClient.SetCarrierOnContext(ctx, headerCarrier(msg.Header()))
//	ctx, span := tracerClient.StartSpan(ctx, "process-message")
//	defer span.End()
//
// Export is off by default; enable it with TRACER_ENABLE_EXPORT=true and the
// standard OTEL_EXPORTER_OTLP_* environment variables.
package tracer
