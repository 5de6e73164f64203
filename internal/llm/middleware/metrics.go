package middleware

import (
	"context"
	"time"

	llmclient "archlens/internal/llm/client"
	"archlens/internal/metrics"
)

// WithMetrics records call counts and latency per phase.
func WithMetrics(m *metrics.Metrics) Middleware {
	return func(next llmclient.TextClient) llmclient.TextClient {
		if m == nil {
			return next
		}
		return &metered{next: next, m: m}
	}
}

type metered struct {
	next llmclient.TextClient
	m    *metrics.Metrics
}

func (c *metered) Name() string { return c.next.Name() }
func (c *metered) Close() error { return c.next.Close() }

func (c *metered) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	phase := llmclient.PhaseFrom(ctx)
	start := time.Now()
	out, err := c.next.GenerateText(ctx, prompt, model, maxTokens)
	c.m.LLMLatency.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.m.LLMRequests.WithLabelValues(phase, outcome).Inc()
	return out, err
}
