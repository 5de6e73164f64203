package llmclient

import (
	"context"
	"fmt"
	"strings"
)

// ProviderConfig selects and configures one backend.
type ProviderConfig struct {
	Provider string // gemini | groq | ollama | fake
	Model    string
	APIKey   string
	BaseURL  string // groq endpoint override or ollama host
}

// New builds the TextClient named by cfg.Provider.
func New(ctx context.Context, cfg ProviderConfig) (TextClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case "groq":
		return NewGroqClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "ollama":
		return NewOllamaClient(cfg.BaseURL, cfg.Model)
	case "fake", "":
		return NewFakeClient(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
