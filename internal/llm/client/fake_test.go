package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClientScriptsPerPhase(t *testing.T) {
	boom := errors.New("boom")
	f := NewFakeClient().
		Script("scenario", FakeResponse{Text: "not json"}, FakeResponse{Err: boom})

	ctx := WithJSONResponse(WithPhase(context.Background(), "scenario"))
	out, err := f.GenerateText(ctx, "p1", "m", 2000)
	require.NoError(t, err)
	assert.Equal(t, "not json", out)

	_, err = f.GenerateText(ctx, "p2", "m", 2000)
	assert.ErrorIs(t, err, boom)

	// exhausted script keeps repeating the last entry
	_, err = f.GenerateText(ctx, "p3", "m", 2000)
	assert.ErrorIs(t, err, boom)

	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "scenario", calls[0].Phase)
	assert.True(t, calls[0].JSON)
	assert.Equal(t, 2000, calls[0].MaxTokens)
}

func TestFakeClientCannedScenarioIsJSON(t *testing.T) {
	f := NewFakeClient()
	out, err := f.GenerateText(WithPhase(context.Background(), "scenario"), "p", "", 0)
	require.NoError(t, err)
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &obj))
	assert.Contains(t, obj, "businessArchitecture")

	ans, err := f.GenerateText(WithPhase(context.Background(), "question"), "p", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "fake answer", ans)
}

func TestFakeClientHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFakeClient().GenerateText(ctx, "p", "", 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider(t *testing.T) {
	c, err := New(context.Background(), ProviderConfig{Provider: "fake"})
	require.NoError(t, err)
	assert.Equal(t, "FakeLLM", c.Name())

	c, err = New(context.Background(), ProviderConfig{Provider: "groq", Model: "m", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Groq:m", c.Name())

	c, err = New(context.Background(), ProviderConfig{Provider: "ollama", Model: "llama3", BaseURL: "http://127.0.0.1:11434"})
	require.NoError(t, err)
	assert.Equal(t, "Ollama:llama3", c.Name())

	_, err = New(context.Background(), ProviderConfig{Provider: "openai"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestCountTokens(t *testing.T) {
	assert.Equal(t, 0, CountTokens("  "))
	assert.Equal(t, 3, CountTokens("one two three"))
}

func TestPhaseFromDefaults(t *testing.T) {
	assert.Equal(t, "unknown", PhaseFrom(context.Background()))
	assert.False(t, WantsJSON(context.Background()))
}
