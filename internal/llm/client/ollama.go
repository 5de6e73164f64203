package llmclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"
)

// OllamaClient talks to a local Ollama daemon through its Generate endpoint.
// The go-ollama Generate call is not context-aware, so cancellation is only
// observed before the request is issued.
type OllamaClient struct {
	client       *ollama.Ollama
	defaultModel string
	host         string
}

func NewOllamaClient(host, model string) (*OllamaClient, error) {
	if strings.TrimSpace(host) == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid host %q: %w", host, err)
	}
	return &OllamaClient{
		client:       ollama.New(*u),
		defaultModel: model,
		host:         host,
	}, nil
}

func (o *OllamaClient) Name() string { return "Ollama:" + o.defaultModel }
func (o *OllamaClient) Close() error { return nil }

// GenerateText ignores maxTokens: the budget is left to the model's own
// num_predict setting configured on the daemon.
func (o *OllamaClient) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if model == "" {
		model = o.defaultModel
	}
	_ = maxTokens
	res, err := o.client.Generate(
		o.client.Generate.WithModel(model),
		o.client.Generate.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama: generate: %w", err)
	}
	if !res.Done {
		return "", fmt.Errorf("ollama: generation did not complete")
	}
	out := strings.TrimSpace(res.Response)
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
