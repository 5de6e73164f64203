package middleware

import (
	llmclient "archlens/internal/llm/client"
)

// Middleware decorates a TextClient to inject cross-cutting concerns
// (rate limiting, logging, metrics, caching).
type Middleware func(llmclient.TextClient) llmclient.TextClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.TextClient, mws ...Middleware) llmclient.TextClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}
