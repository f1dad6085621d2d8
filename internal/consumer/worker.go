// Package consumer drives the message loop: it consumes analysis jobs from
// the broker, dispatches them by type, and enforces the retry-once policy
// through transport headers.
package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/silvercare-ai/medmatch/internal/analysis"
	"github.com/silvercare-ai/medmatch/internal/retrieval"
	"github.com/silvercare-ai/medmatch/internal/video"
	"github.com/silvercare-ai/medmatch/pkg/metrics"
	"github.com/silvercare-ai/medmatch/pkg/rabbit"
	"github.com/silvercare-ai/medmatch/pkg/tracer"
)

// DeliveryAttemptsHeader carries the retry count in transport headers. The
// message payload never holds retry bookkeeping.
const DeliveryAttemptsHeader = "x-delivery-attempts"

// maxDeliveryAttempts bounds processing to exactly two attempts per message.
const maxDeliveryAttempts = 2

// Broker is the queue dependency.
type Broker interface {
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan rabbit.Message
	Publish(ctx context.Context, msg []byte, headers ...map[string]interface{}) error
}

// DrugSummaries runs drug-summary jobs.
type DrugSummaries interface {
	RunBatch(ctx context.Context, job analysis.Job) error
	RunParallel(ctx context.Context, job analysis.Job) error
}

// VideoSummaries runs video-summary jobs.
type VideoSummaries interface {
	Handle(ctx context.Context, job video.Job) error
}

// Logger defines the interface for logging operations in the consumer package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Worker is the message-loop driver.
type Worker struct {
	cfg    Config
	broker Broker
	drugs  DrugSummaries
	videos VideoSummaries
	tracer *tracer.Tracer
	logger Logger
	wg     sync.WaitGroup

	processed *prometheus.CounterVec
	retried   *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewWorker(
	cfg Config,
	broker Broker,
	drugs DrugSummaries,
	videos VideoSummaries,
	tr *tracer.Tracer,
	m *metrics.Metrics,
	logger Logger,
) *Worker {
	return &Worker{
		cfg:    cfg,
		broker: broker,
		drugs:  drugs,
		videos: videos,
		tracer: tr,
		logger: logger,
		processed: m.RegisterCounterVec("worker_messages_processed_total",
			"Messages processed successfully.", []string{"type"}),
		retried: m.RegisterCounterVec("worker_messages_retried_total",
			"Messages republished for a second attempt.", []string{"type"}),
		dropped: m.RegisterCounterVec("worker_messages_dropped_total",
			"Messages dropped after the retry attempt failed.", []string{"type"}),
		duration: m.RegisterHistogramVec("worker_job_duration_seconds",
			"Per-message processing duration.", []string{"type", "outcome"},
			[]float64{0.1, 0.5, 1, 5, 15, 60, 180}),
	}
}

// Run consumes until the context is cancelled or the broker shuts down. The
// delivery channel closes only after the in-flight message is handed over, so
// processing always completes before Run returns.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("worker started", nil, nil)
	for msg := range w.broker.Consume(ctx, &w.wg) {
		w.process(ctx, msg)
	}
	w.wg.Wait()
	w.logger.Info("worker stopped", nil, nil)
}

// process applies the per-message state machine: dispatch, then ack on
// success, republish-with-marker on first failure, drop on second failure.
func (w *Worker) process(ctx context.Context, msg rabbit.Message) {
	ctx = w.tracer.SetCarrierOnContext(ctx, stringHeaders(msg.Header()))
	ctx, span := w.tracer.StartSpan(ctx, "process-message")
	defer span.End()

	start := time.Now()
	attempt := deliveryAttempt(msg.Header())

	msgType, err := w.dispatch(ctx, msg.Body())
	if msgType == "" {
		msgType = "unknown"
	}
	w.tracer.SetAttributes(span, map[string]interface{}{
		"message.type":    msgType,
		"message.attempt": attempt,
	})

	if err == nil {
		w.processed.WithLabelValues(msgType).Inc()
		w.observe(msgType, "success", start)
		w.ack(msg)
		return
	}
	w.tracer.RecordErrorOnSpan(span, err)

	if attempt >= maxDeliveryAttempts {
		w.logger.Error("message failed on retry attempt, dropping", err, map[string]interface{}{
			"type":    msgType,
			"attempt": attempt,
		})
		w.dropped.WithLabelValues(msgType).Inc()
		w.observe(msgType, "dropped", start)
		w.ack(msg)
		return
	}

	w.logger.Warn("message failed, republishing for one retry", err, map[string]interface{}{
		"type": msgType,
	})

	headers := map[string]interface{}{DeliveryAttemptsHeader: int32(attempt + 1)}
	for k, v := range w.tracer.GetCarrier(ctx) {
		headers[k] = v
	}
	if pubErr := w.broker.Publish(ctx, msg.Body(), headers); pubErr != nil {
		// Last resort: hand the message back to the broker unchanged.
		w.logger.Error("republish failed, returning message to queue", pubErr, map[string]interface{}{
			"type": msgType,
		})
		w.observe(msgType, "requeued", start)
		if nackErr := msg.NackMsg(true); nackErr != nil {
			w.logger.Error("nack failed", nackErr, nil)
		}
		return
	}

	w.retried.WithLabelValues(msgType).Inc()
	w.observe(msgType, "retried", start)
	w.ack(msg)
}

// dispatch parses the envelope and routes to the matching handler under the
// per-job timeout. The returned type labels metrics even when processing
// fails.
func (w *Worker) dispatch(ctx context.Context, body []byte) (string, error) {
	env, err := parseEnvelope(body)
	if err != nil {
		return "", err
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.cfg.JobTimeout)
	defer cancel()

	switch env.Type {
	case TypeDrugSummary:
		payload, err := parseDrugSummary(env.Payload)
		if err != nil {
			return env.Type, err
		}
		job := analysis.Job{
			ScheduleID: payload.ScheduleID,
			Mentions:   toMentions(payload.Mentions),
		}
		if w.cfg.BatchEnrichment {
			return env.Type, w.drugs.RunBatch(jobCtx, job)
		}
		return env.Type, w.drugs.RunParallel(jobCtx, job)

	case TypeVideoSummary:
		payload, err := parseVideoSummary(env.Payload)
		if err != nil {
			return env.Type, err
		}
		return env.Type, w.videos.Handle(jobCtx, video.Job{
			MeetingMatchID: payload.MeetingMatchID,
			ObjectKey:      payload.ObjectKey,
		})
	}

	// parseEnvelope only admits known types.
	return env.Type, nil
}

func (w *Worker) ack(msg rabbit.Message) {
	if err := msg.AckMsg(); err != nil {
		w.logger.Error("ack failed", err, nil)
	}
}

func (w *Worker) observe(msgType, outcome string, start time.Time) {
	w.duration.WithLabelValues(msgType, outcome).Observe(time.Since(start).Seconds())
}

func toMentions(payload []MentionPayload) []retrieval.Mention {
	mentions := make([]retrieval.Mention, 0, len(payload))
	for _, m := range payload {
		mentions = append(mentions, retrieval.Mention{
			Name:       m.Name,
			DosageText: m.Dosage,
			Note:       m.Note,
		})
	}
	return mentions
}

// deliveryAttempt reads the attempt count from transport headers. An absent
// or unreadable header means the first attempt. AMQP tables deliver numbers
// in several widths depending on the publisher.
func deliveryAttempt(header map[string]interface{}) int {
	v, ok := header[DeliveryAttemptsHeader]
	if !ok {
		return 1
	}
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	}
	return 1
}

// stringHeaders keeps the string-valued transport headers, which is where
// trace context travels.
func stringHeaders(header map[string]interface{}) map[string]string {
	out := make(map[string]string, len(header))
	for k, v := range header {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
