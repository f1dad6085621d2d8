package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&Config{
		Endpoint:     srv.URL,
		APIKey:       "test-key",
		Model:        "test-model",
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)
	return client
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotReq chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "hello back"}},
			},
		})
	})

	out, err := client.Complete(context.Background(), "be nice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", out)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "be nice", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	assert.ErrorContains(t, err, "empty choices")
}

func TestCompleteHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	assert.ErrorContains(t, err, "http 502")
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{Model: "m"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Endpoint: "http://x"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Endpoint: "http://x", Model: "m"}
	assert.NoError(t, cfg.Validate())
}
