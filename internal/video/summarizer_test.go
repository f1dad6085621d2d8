package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req summarizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "meetings/rec-3.mp4", req.ObjectKey)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(summarizeResponse{Summary: "복약 상담 요약"})
	}))
	defer srv.Close()

	s, err := NewHTTPSummarizer(SummarizerConfig{Endpoint: srv.URL, APIKey: "secret", HTTPTimeoutS: 5})
	require.NoError(t, err)

	summary, err := s.Summarize(context.Background(), "meetings/rec-3.mp4")
	require.NoError(t, err)
	assert.Equal(t, "복약 상담 요약", summary)
}

func TestSummarizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := NewHTTPSummarizer(SummarizerConfig{Endpoint: srv.URL, HTTPTimeoutS: 5})
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "k")
	assert.Error(t, err)
}

func TestSummarizerConfigValidate(t *testing.T) {
	_, err := NewHTTPSummarizer(SummarizerConfig{HTTPTimeoutS: 5})
	assert.Error(t, err)
}
