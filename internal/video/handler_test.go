package video

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvercare-ai/medmatch/pkg/minio"
)

type fakeObjects struct {
	info *minio.ObjectInfo
	err  error
}

func (f *fakeObjects) StatObject(_ context.Context, key string) (*minio.ObjectInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.info != nil {
		return f.info, nil
	}
	return &minio.ObjectInfo{Key: key, Size: 1024, ContentType: "video/mp4"}, nil
}

type fakeSummarizer struct {
	summary string
	err     error
	seen    string
}

func (f *fakeSummarizer) Summarize(_ context.Context, objectKey string) (string, error) {
	f.seen = objectKey
	return f.summary, f.err
}

type fakeStore struct {
	id      uint
	content string
	err     error
	calls   int
}

func (f *fakeStore) UpdateMeetingContent(_ context.Context, id uint, content string) error {
	f.calls++
	f.id = id
	f.content = content
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func TestHandleStoresSummary(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "어르신이 복약 상담을 받으셨습니다."}
	store := &fakeStore{}
	h := NewHandler(&fakeObjects{}, summarizer, store, nopLogger{})

	err := h.Handle(context.Background(), Job{MeetingMatchID: 3, ObjectKey: "meetings/2026/rec-3.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "meetings/2026/rec-3.mp4", summarizer.seen)
	assert.Equal(t, uint(3), store.id)
	assert.Equal(t, "어르신이 복약 상담을 받으셨습니다.", store.content)
}

func TestHandleMissingRecording(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(&fakeObjects{err: errors.New("key does not exist")}, &fakeSummarizer{}, store, nopLogger{})

	err := h.Handle(context.Background(), Job{MeetingMatchID: 3, ObjectKey: "meetings/missing.mp4"})
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestHandleSummarizerFailure(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(&fakeObjects{}, &fakeSummarizer{err: errors.New("transcription backend down")}, store, nopLogger{})

	err := h.Handle(context.Background(), Job{MeetingMatchID: 3, ObjectKey: "meetings/rec.mp4"})
	require.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestHandleEmptySummaryRejected(t *testing.T) {
	store := &fakeStore{}
	h := NewHandler(&fakeObjects{}, &fakeSummarizer{summary: "  "}, store, nopLogger{})

	assert.Error(t, h.Handle(context.Background(), Job{MeetingMatchID: 3, ObjectKey: "meetings/rec.mp4"}))
	assert.Zero(t, store.calls)
}

func TestHandleValidatesJob(t *testing.T) {
	h := NewHandler(&fakeObjects{}, &fakeSummarizer{summary: "s"}, &fakeStore{}, nopLogger{})

	assert.Error(t, h.Handle(context.Background(), Job{ObjectKey: "k"}))
	assert.Error(t, h.Handle(context.Background(), Job{MeetingMatchID: 1}))
}

func TestHandleStoreFailurePropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	h := NewHandler(&fakeObjects{}, &fakeSummarizer{summary: "요약"}, store, nopLogger{})

	assert.Error(t, h.Handle(context.Background(), Job{MeetingMatchID: 3, ObjectKey: "k"}))
}
