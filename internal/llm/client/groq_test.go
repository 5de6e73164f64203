package llmclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerateTextSendsBudgetAndFormat(t *testing.T) {
	var got groqChatReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("x-ratelimit-remaining-requests", "41")
		w.Header().Set("x-ratelimit-reset-tokens", "7.5s")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	g := NewGroqClient("k", "llama-3.3-70b-versatile", srv.URL)
	ctx := WithJSONResponse(context.Background())
	out, err := g.GenerateText(ctx, "prompt", "", 2000)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.Equal(t, "json_object", got.ResponseFormat["type"])
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "prompt", got.Messages[0].Content)

	rl, ok := g.LastRateLimitHeaders()
	require.True(t, ok)
	assert.Equal(t, 41, rl.RemainingRequests)
	assert.Equal(t, 7500*time.Millisecond, rl.ResetTokens)
}

func TestGroqGenerateTextPlainOmitsFormat(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	out, err := NewGroqClient("k", "m", srv.URL).GenerateText(context.Background(), "q", "other", 300)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.NotContains(t, raw, "response_format")
	assert.Equal(t, "other", raw["model"])
}

func TestGroqGenerateTextErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quota":
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}
	}))
	defer srv.Close()

	_, err := NewGroqClient("k", "m", srv.URL+"/quota").GenerateText(context.Background(), "p", "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, err = NewGroqClient("k", "m", srv.URL+"/empty").GenerateText(context.Background(), "p", "", 10)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
