package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	llmclient "archlens/internal/llm/client"
)

// WithCache memoises successful plain-text answers in an LRU of the given size.
// Calls that request JSON output are never cached, so every scenario analysis
// still reaches the provider. size <= 0 disables the cache.
func WithCache(size int) Middleware {
	return func(next llmclient.TextClient) llmclient.TextClient {
		if size <= 0 {
			return next
		}
		c, err := lru.New[string, string](size)
		if err != nil {
			return next
		}
		return &cached{next: next, cache: c}
	}
}

type cached struct {
	next  llmclient.TextClient
	cache *lru.Cache[string, string]
}

func (c *cached) Name() string { return c.next.Name() }
func (c *cached) Close() error {
	c.cache.Purge()
	return c.next.Close()
}

func (c *cached) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	if llmclient.WantsJSON(ctx) {
		return c.next.GenerateText(ctx, prompt, model, maxTokens)
	}
	key := cacheKey(prompt, model, maxTokens)
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	out, err := c.next.GenerateText(ctx, prompt, model, maxTokens)
	if err == nil {
		c.cache.Add(key, out)
	}
	return out, err
}

func cacheKey(prompt, model string, maxTokens int) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(maxTokens)))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
