package middleware

import (
	"context"

	llmclient "archlens/internal/llm/client"
)

// PromptHook observes every call around the wrapped client. Implementations
// must not block or panic.
type PromptHook interface {
	Before(ctx context.Context, phase, prompt string)
	After(ctx context.Context, phase, response string, err error)
}

// WithHook calls hook.Before/After around GenerateText. A nil hook is a no-op.
func WithHook(hook PromptHook) Middleware {
	return func(next llmclient.TextClient) llmclient.TextClient {
		if hook == nil {
			return next
		}
		return &hooked{next: next, hook: hook}
	}
}

type hooked struct {
	next llmclient.TextClient
	hook PromptHook
}

func (h *hooked) Name() string { return h.next.Name() }
func (h *hooked) Close() error { return h.next.Close() }

func (h *hooked) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	phase := llmclient.PhaseFrom(ctx)
	h.hook.Before(ctx, phase, prompt)
	out, err := h.next.GenerateText(ctx, prompt, model, maxTokens)
	h.hook.After(ctx, phase, out, err)
	return out, err
}
