// Package video handles video-summary jobs: a recorded meeting uploaded to
// object storage is transcribed, summarized, and the summary written onto the
// meeting match.
package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/silvercare-ai/medmatch/pkg/minio"
)

// ObjectStore is the recording storage dependency.
type ObjectStore interface {
	StatObject(ctx context.Context, key string) (*minio.ObjectInfo, error)
}

// Summarizer turns an uploaded recording into a meeting summary. The
// transcription service sits behind this interface; the worker never
// processes media itself.
type Summarizer interface {
	Summarize(ctx context.Context, objectKey string) (string, error)
}

// Store is the persistence dependency.
type Store interface {
	UpdateMeetingContent(ctx context.Context, meetingMatchID uint, content string) error
}

// Logger defines the interface for logging operations in the video package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Job is one video-summary unit of work.
type Job struct {
	MeetingMatchID uint
	ObjectKey      string
}

// Handler runs video-summary jobs.
type Handler struct {
	objects    ObjectStore
	summarizer Summarizer
	store      Store
	logger     Logger
}

func NewHandler(objects ObjectStore, summarizer Summarizer, store Store, logger Logger) *Handler {
	return &Handler{
		objects:    objects,
		summarizer: summarizer,
		store:      store,
		logger:     logger,
	}
}

// Handle verifies the recording exists, summarizes it, and persists the
// summary. Any failure is returned to the consumer, which applies the
// standard retry policy.
func (h *Handler) Handle(ctx context.Context, job Job) error {
	if job.MeetingMatchID == 0 {
		return fmt.Errorf("video job carries no meeting match id")
	}
	if strings.TrimSpace(job.ObjectKey) == "" {
		return fmt.Errorf("video job carries no object key")
	}

	info, err := h.objects.StatObject(ctx, job.ObjectKey)
	if err != nil {
		return fmt.Errorf("recording unavailable: %w", err)
	}
	h.logger.Debug("recording located", nil, map[string]interface{}{
		"object_key":   info.Key,
		"size":         info.Size,
		"content_type": info.ContentType,
	})

	summary, err := h.summarizer.Summarize(ctx, job.ObjectKey)
	if err != nil {
		return fmt.Errorf("summarize recording %q: %w", job.ObjectKey, err)
	}
	if strings.TrimSpace(summary) == "" {
		return fmt.Errorf("summarizer returned empty summary for %q", job.ObjectKey)
	}

	if err := h.store.UpdateMeetingContent(ctx, job.MeetingMatchID, summary); err != nil {
		return err
	}

	h.logger.Info("meeting summary stored", nil, map[string]interface{}{
		"meeting_match_id": job.MeetingMatchID,
	})
	return nil
}
