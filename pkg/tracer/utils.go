package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// RecordErrorOnSpan records err on the span and marks its status as error so
// the failed job is visible in the trace backend.
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// StartSpan opens a span named after the operation, such as "process-message",
// as a child of whatever span the context already carries. Callers must End it.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	tracer := t.tracer.Tracer("")
	ctx, span := tracer.Start(ctx, name)
	return ctx, span
}

// SetAttributes attaches the map to the span, mapping Go types onto the
// matching attribute kinds. Unknown types are stringified.
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier serializes the current trace context into W3C headers
// (traceparent, and tracestate when present). The worker puts these on
// republished queue messages so the retry stays on the original trace.
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext is the inverse of GetCarrier: it reads W3C trace
// headers, typically lifted from a consumed message's transport headers, and
// returns a context parented to the upstream trace.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
