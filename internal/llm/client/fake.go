package llmclient

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeResponse is one scripted reply; a non-nil Err is returned instead of Text.
type FakeResponse struct {
	Text string
	Err  error
}

// FakeCall records the arguments of one GenerateText call.
type FakeCall struct {
	Phase     string
	Prompt    string
	Model     string
	MaxTokens int
	JSON      bool
}

// FakeClient returns deterministic payloads per phase for offline runs and tests.
// Scripted responses are consumed in order; once a phase's script is exhausted
// the last scripted response repeats, and unscripted phases get the canned defaults.
type FakeClient struct {
	mu      sync.Mutex
	scripts map[string][]FakeResponse
	last    map[string]FakeResponse
	calls   []FakeCall
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		scripts: map[string][]FakeResponse{},
		last:    map[string]FakeResponse{},
	}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Script queues responses for a phase and returns f for chaining.
func (f *FakeClient) Script(phase string, rs ...FakeResponse) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[phase] = append(f.scripts[phase], rs...)
	return f
}

// Calls returns a copy of the recorded calls.
func (f *FakeClient) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) GenerateText(ctx context.Context, prompt, model string, maxTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	phase := PhaseFrom(ctx)
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{
		Phase:     phase,
		Prompt:    prompt,
		Model:     model,
		MaxTokens: maxTokens,
		JSON:      WantsJSON(ctx),
	})
	var (
		resp   FakeResponse
		hasOne bool
	)
	if q := f.scripts[phase]; len(q) > 0 {
		resp, hasOne = q[0], true
		f.scripts[phase] = q[1:]
		f.last[phase] = resp
	} else if r, ok := f.last[phase]; ok {
		resp, hasOne = r, true
	}
	f.mu.Unlock()

	if hasOne {
		if resp.Err != nil {
			return "", resp.Err
		}
		return resp.Text, nil
	}
	return cannedResponse(phase), nil
}

func cannedResponse(phase string) string {
	switch phase {
	case "scenario":
		obj := map[string]any{
			"businessArchitecture": map[string]any{
				"capabilities": []any{
					map[string]any{
						"name":        "Order Management",
						"description": "fake capability",
						"maturity":    55,
						"importance":  85,
						"processes":   []string{"Order intake"},
						"systems":     []string{"Order Service"},
						"gaps":        []string{"Manual approvals"},
					},
				},
				"processes":    []string{"Order intake"},
				"stakeholders": []string{"Operations"},
			},
			"applicationArchitecture": map[string]any{
				"applications": []string{"Order Portal"},
				"services":     []string{"Order Service"},
				"interfaces":   []string{"REST"},
			},
			"dataArchitecture": map[string]any{
				"entities":   []string{"Order"},
				"flows":      []string{"Portal to Order Service"},
				"governance": []string{"Retention policy"},
			},
			"technologyArchitecture": map[string]any{
				"infrastructure": []string{"Container Cluster"},
				"platforms":      []string{"Kubernetes"},
				"networks":       []string{"VPC"},
			},
			"recommendations":   []string{"fake recommendation"},
			"risks":             []string{"fake risk"},
			"opportunities":     []string{"fake opportunity"},
			"visionTitle":       "Fake Vision",
			"visionDescription": "fake vision description",
			"objectives":        []string{"fake objective"},
			"constraints":       []string{},
			"assumptions":       []string{},
			"timeline": []any{
				map[string]any{"phase": "Foundation", "duration": "3 months", "deliverables": []string{"Baseline"}, "status": "planned"},
			},
		}
		b, _ := json.Marshal(obj)
		return string(b)
	case "question":
		return "fake answer"
	default:
		return "{}"
	}
}
