// Package coach keeps a strategy-coaching transcript on top of the analyzer.
package coach

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"archlens/internal/analysis"
	arch "archlens/internal/types/architecture"
)

var ErrEmptyQuestion = errors.New("coach: question is empty")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const greetingConfidence = 95

type Message struct {
	ID         string         `json:"id"`
	Role       Role           `json:"role"`
	Content    string         `json:"content"`
	Timestamp  time.Time      `json:"timestamp"`
	Framework  arch.Framework `json:"framework,omitempty"`
	Confidence int            `json:"confidence,omitempty"`
}

// Answerer is satisfied by *analysis.Analyzer.
type Answerer interface {
	Answer(ctx context.Context, question string, fw arch.Framework) analysis.Answer
}

// Options tunes a Session. Zero values use the wall clock and the global
// random source.
type Options struct {
	Now  func() time.Time
	Rand func(n int) int
}

type Session struct {
	answerer Answerer
	now      func() time.Time
	intn     func(int) int

	mu       sync.RWMutex
	fw       arch.Framework
	messages []Message
}

// NewSession starts a transcript seeded with a greeting for fw.
func NewSession(answerer Answerer, fw arch.Framework, opts Options) *Session {
	s := &Session{answerer: answerer, now: opts.Now, intn: opts.Rand, fw: fw}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.intn == nil {
		s.intn = rand.IntN
	}
	s.messages = []Message{s.greeting(fw)}
	return s
}

func (s *Session) greeting(fw arch.Framework) Message {
	return Message{
		ID:   uuid.NewString(),
		Role: RoleAssistant,
		Content: fmt.Sprintf("Hello! I'm your AI Strategy Coach, specialized in %s. I can help you analyze "+
			"architectural decisions, align strategies with business capabilities, and provide governance "+
			"insights. What would you like to explore today?", fw.DisplayName()),
		Timestamp:  s.now(),
		Framework:  fw,
		Confidence: greetingConfidence,
	}
}

// Ask records question, asks the answerer and records the reply. The lock is
// not held while the answerer runs.
func (s *Session) Ask(ctx context.Context, question string) (Message, error) {
	if strings.TrimSpace(question) == "" {
		return Message{}, ErrEmptyQuestion
	}
	s.mu.Lock()
	fw := s.fw
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   question,
		Timestamp: s.now(),
	})
	s.mu.Unlock()

	ans := s.answerer.Answer(ctx, question, fw)
	reply := Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    ans.Text,
		Timestamp:  s.now(),
		Framework:  fw,
		Confidence: s.confidence(ans.Fallback),
	}

	s.mu.Lock()
	s.messages = append(s.messages, reply)
	s.mu.Unlock()
	return reply, nil
}

// confidence is 80-99 for model answers and 55-69 for fixed fallbacks.
func (s *Session) confidence(fallback bool) int {
	if fallback {
		return 55 + s.intn(15)
	}
	return 80 + s.intn(20)
}

func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Framework() arch.Framework {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fw
}

// SetFramework switches the framework used for subsequent questions.
func (s *Session) SetFramework(fw arch.Framework) {
	s.mu.Lock()
	s.fw = fw
	s.mu.Unlock()
}

// SuggestedQuestions returns starter prompts for the current framework.
func (s *Session) SuggestedQuestions() []string {
	focus := "What TOGAF ADM phase should we focus on?"
	switch s.Framework() {
	case arch.FrameworkZachman:
		focus = "Which Zachman perspective is least covered?"
	case arch.FrameworkISO42001:
		focus = "Which ISO 42001 controls need attention first?"
	case arch.FrameworkCustom:
		focus = "Which of our architecture principles is at risk?"
	}
	return []string{
		"How does this align with our business capabilities?",
		focus,
		"Are there any stakeholder concerns missing?",
		"What compliance gaps should we address?",
		"How can we improve our architecture maturity?",
	}
}
