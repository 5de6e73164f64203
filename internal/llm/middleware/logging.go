package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	llmclient "archlens/internal/llm/client"
)

// WithLogging logs request size, latency and errors. A nil logger disables it.
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next llmclient.TextClient) llmclient.TextClient {
		return &logging{next: next, log: logger.Named("llm")}
	}
}

type logging struct {
	next llmclient.TextClient
	log  *zap.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	phase := llmclient.PhaseFrom(ctx)
	l.log.Debug("LLM request",
		zap.String("client", l.next.Name()),
		zap.String("phase", phase),
		zap.String("model", model),
		zap.Int("max_tokens", maxTokens),
		zap.Int("bytes", len(prompt)))
	start := time.Now()
	out, err := l.next.GenerateText(ctx, prompt, model, maxTokens)
	if err != nil {
		l.log.Warn("LLM error",
			zap.String("phase", phase),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return out, err
	}
	l.log.Debug("LLM response",
		zap.String("phase", phase),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(out)))
	return out, nil
}
