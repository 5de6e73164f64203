package coach

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archlens/internal/analysis"
	llmclient "archlens/internal/llm/client"
	arch "archlens/internal/types/architecture"
)

func newSession(t *testing.T, fake *llmclient.FakeClient, fw arch.Framework) *Session {
	t.Helper()
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return NewSession(&analysis.Analyzer{LLM: fake}, fw, Options{
		Now:  func() time.Time { return clock },
		Rand: func(n int) int { return n - 1 },
	})
}

func TestNewSessionGreets(t *testing.T) {
	s := newSession(t, llmclient.NewFakeClient(), arch.FrameworkISO42001)
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, 95, msgs[0].Confidence)
	assert.Contains(t, msgs[0].Content, "ISO 42001")
}

func TestAskModelAnswer(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(analysis.PhaseQuestion, llmclient.FakeResponse{Text: "Start with Phase A."})
	s := newSession(t, fake, arch.FrameworkTOGAF)

	reply, err := s.Ask(context.Background(), "Where do we start?")
	require.NoError(t, err)
	assert.Equal(t, "Start with Phase A.", reply.Content)
	assert.Equal(t, 99, reply.Confidence)
	assert.Equal(t, arch.FrameworkTOGAF, reply.Framework)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "Where do we start?", msgs[1].Content)
	assert.Equal(t, reply, msgs[2])
}

func TestAskFallbackHasLowerConfidence(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(analysis.PhaseQuestion, llmclient.FakeResponse{Err: context.DeadlineExceeded})
	s := newSession(t, fake, arch.FrameworkZachman)

	reply, err := s.Ask(context.Background(), "Coverage?")
	require.NoError(t, err)
	assert.Equal(t, analysis.FallbackAnswer(arch.FrameworkZachman), reply.Content)
	assert.Equal(t, 69, reply.Confidence)
}

func TestAskRejectsBlank(t *testing.T) {
	s := newSession(t, llmclient.NewFakeClient(), arch.FrameworkTOGAF)
	_, err := s.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Len(t, s.Messages(), 1)
}

func TestSetFrameworkChangesSuggestions(t *testing.T) {
	fake := llmclient.NewFakeClient()
	s := newSession(t, fake, arch.FrameworkTOGAF)
	assert.Contains(t, s.SuggestedQuestions()[1], "TOGAF")

	s.SetFramework(arch.FrameworkCustom)
	assert.Equal(t, arch.FrameworkCustom, s.Framework())
	assert.Len(t, s.SuggestedQuestions(), 5)

	reply, err := s.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, arch.FrameworkCustom, reply.Framework)
	assert.Equal(t, "fake answer", reply.Content)
}
