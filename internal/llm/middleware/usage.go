package middleware

import (
	"context"
	"sort"
	"sync"

	llmclient "archlens/internal/llm/client"
)

// UsageStat is the running total for one model.
type UsageStat struct {
	Model    string `json:"model"`
	Requests int64  `json:"requests"`
	Tokens   int64  `json:"tokens"`
	Errors   int64  `json:"errors"`
}

// UsageCounter tracks LLM usage for the lifetime of the process.
type UsageCounter struct {
	mu     sync.Mutex
	models map[string]*UsageStat
}

func NewUsageCounter() *UsageCounter {
	return &UsageCounter{models: map[string]*UsageStat{}}
}

func (u *UsageCounter) record(model string, tokens int64, hasErr bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.models[model]
	if !ok {
		s = &UsageStat{Model: model}
		u.models[model] = s
	}
	s.Requests++
	s.Tokens += tokens
	if hasErr {
		s.Errors++
	}
}

// Snapshot returns per-model totals sorted by model name.
func (u *UsageCounter) Snapshot() []UsageStat {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]UsageStat, 0, len(u.models))
	for _, s := range u.models {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// WithUsage counts requests, estimated tokens (prompt + response) and errors.
func WithUsage(counter *UsageCounter) Middleware {
	return func(next llmclient.TextClient) llmclient.TextClient {
		if counter == nil {
			return next
		}
		return &usageClient{next: next, counter: counter}
	}
}

type usageClient struct {
	next    llmclient.TextClient
	counter *UsageCounter
}

func (u *usageClient) Name() string { return u.next.Name() }
func (u *usageClient) Close() error { return u.next.Close() }

func (u *usageClient) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	out, err := u.next.GenerateText(ctx, prompt, model, maxTokens)
	key := model
	if key == "" {
		key = u.next.Name()
	}
	tokens := llmclient.CountTokens(prompt) + llmclient.CountTokens(out)
	u.counter.record(key, int64(tokens), err != nil)
	return out, err
}
