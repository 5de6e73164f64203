package llmclient

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse   = errors.New("llm: empty response from model")
	ErrUnknownProvider = errors.New("llm: unknown provider")
)

// TextClient is the narrow text-generation contract the analyzer depends on.
// One call is one provider attempt; implementations must not retry.
type TextClient interface {
	Name() string
	GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error)
	Close() error
}

// QuotaReporter is implemented by clients that surface the provider's
// rate-limit headers.
type QuotaReporter interface {
	LastRateLimitHeaders() (RateLimitHeaders, bool)
}
