package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	llmclient "archlens/internal/llm/client"
	"archlens/internal/metrics"
	arch "archlens/internal/types/architecture"
	"archlens/internal/util/jsonutil"
)

const capabilityReply = "```json\n" + `{
  "businessArchitecture": {
    "capabilities": [{"name": "X", "description": "d", "maturity": 50, "importance": 60, "processes": ["p"], "systems": ["s"], "gaps": ["g"]}],
    "processes": [],
    "stakeholders": ["CFO"]
  },
  "applicationArchitecture": {"applications": [], "services": [], "interfaces": []},
  "dataArchitecture": {"entities": ["Ledger"], "flows": [], "governance": []},
  "technologyArchitecture": {"infrastructure": [], "platforms": [], "networks": []},
  "recommendations": ["r"],
  "risks": [],
  "opportunities": [],
  "visionTitle": "Finance Vision",
  "visionDescription": "",
  "objectives": [],
  "constraints": [],
  "assumptions": [],
  "timeline": [{"phase": "One", "duration": "1 month", "deliverables": ["x"], "status": "In Progress"}]
}` + "\n```"

func newAnalyzer(fake *llmclient.FakeClient) *Analyzer {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Analyzer{
		LLM:       fake,
		Projector: NewProjector(11),
		Now:       func() time.Time { return fixed },
	}
}

func TestAnalyzeCapabilityBecomesBusinessComponent(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(PhaseScenario, llmclient.FakeResponse{Text: capabilityReply})
	a := newAnalyzer(fake).Analyze(context.Background(), "Close the books faster", arch.FrameworkTOGAF)

	assert.Equal(t, arch.OriginModel, a.Origin)
	require.NotEmpty(t, a.Vision.Components)
	x := a.Vision.Components[0]
	assert.Equal(t, "X", x.Name)
	assert.Equal(t, arch.LayerBusiness, x.Type)
	assert.Equal(t, 50, x.Maturity)
	assert.Equal(t, 60, x.Importance)

	require.Len(t, a.Vision.Capabilities, 1)
	assert.Equal(t, 50, a.Vision.Capabilities[0].Maturity)

	assert.Equal(t, "Finance Vision", a.Vision.Title)
	assert.Equal(t, defaultVisionDescription, a.Vision.Description)
	assert.Equal(t, defaultObjectives, a.Vision.Objectives)
	assert.Equal(t, []string{"CFO"}, a.Vision.Stakeholders)
	require.Len(t, a.Vision.Timeline, 1)
	assert.Equal(t, arch.PhaseInProgress, a.Vision.Timeline[0].Status)
	assert.Equal(t, []string{"r"}, a.Recommendations)
	assert.NotNil(t, a.Risks)
	assert.Equal(t, "Close the books faster", a.Scenario)
}

func TestAnalyzeRequestShape(t *testing.T) {
	fake := llmclient.NewFakeClient()
	an := newAnalyzer(fake)
	an.Model = "test-model"
	an.Analyze(context.Background(), "Launch a loyalty programme", arch.FrameworkZachman)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	c := calls[0]
	assert.Equal(t, PhaseScenario, c.Phase)
	assert.Equal(t, "test-model", c.Model)
	assert.Equal(t, DefaultScenarioTokens, c.MaxTokens)
	assert.True(t, c.JSON)
	assert.Contains(t, c.Prompt, "Launch a loyalty programme")
	assert.Contains(t, c.Prompt, FrameworkContext(arch.FrameworkZachman))
	assert.Contains(t, c.Prompt, scenarioSchema)
}

func TestScenarioPromptExampleDecodes(t *testing.T) {
	prompt, err := ScenarioPrompt(arch.FrameworkTOGAF, "Open a new branch")
	require.NoError(t, err)
	assert.Contains(t, prompt, "[EXAMPLES]")
	assert.Contains(t, prompt, scenarioExampleOutput)

	obj, err := jsonutil.ParseObject(scenarioExampleOutput)
	require.NoError(t, err)
	r := decodeResponse(obj)
	require.Len(t, r.Raw.Business.Capabilities, 1)
	assert.Equal(t, "Claims Handling", r.Raw.Business.Capabilities[0].Name)
	assert.Equal(t, "Digital Claims", r.VisionTitle)
	require.Len(t, r.Timeline, 1)
	assert.Equal(t, arch.PhasePlanned, r.Timeline[0].Status)
}

func TestAnalyzeNotJSONFallsBack(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(PhaseScenario, llmclient.FakeResponse{Text: "not json"})
	got := newAnalyzer(fake).Analyze(context.Background(), "s", arch.FrameworkISO42001)
	want := Synthesize("s", arch.FrameworkISO42001)

	assert.Equal(t, arch.OriginFallback, got.Origin)
	assert.Equal(t, want.Analysis, got.Analysis)
	assert.Equal(t, len(want.Vision.Components), len(got.Vision.Components))
	assert.Len(t, got.Vision.Capabilities, 4)
	assert.Equal(t, want.Vision.Title, got.Vision.Title)
}

func TestAnalyzeNonObjectFallsBack(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(PhaseScenario, llmclient.FakeResponse{Text: `["a"]`})
	got := newAnalyzer(fake).Analyze(context.Background(), "s", arch.FrameworkCustom)
	assert.Equal(t, arch.OriginFallback, got.Origin)
}

func TestAnalyzeTransportErrorFallsBackAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	fake := llmclient.NewFakeClient().Script(PhaseScenario, llmclient.FakeResponse{Err: errors.New("quota")})
	an := newAnalyzer(fake)
	an.Logger = zap.New(core)
	an.Metrics = m

	got := an.Analyze(context.Background(), "s", arch.FrameworkTOGAF)
	assert.Equal(t, arch.OriginFallback, got.Origin)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "transport", logs.All()[0].ContextMap()["reason"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues("analyze", "transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("TOGAF", "fallback")))
}

func TestAnalyzeWithoutClient(t *testing.T) {
	got := (&Analyzer{}).Analyze(context.Background(), "s", arch.FrameworkTOGAF)
	assert.Equal(t, arch.OriginFallback, got.Origin)
}

func TestAnalyzeMissingKeysDefaultFieldByField(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(PhaseScenario, llmclient.FakeResponse{
		Text: `{"businessArchitecture": {"capabilities": [{"name": "Y", "maturity": "140"}, {"name": ""}]}}`,
	})
	got := newAnalyzer(fake).Analyze(context.Background(), "s", arch.FrameworkTOGAF)

	assert.Equal(t, arch.OriginModel, got.Origin)
	assert.Equal(t, defaultVisionTitle, got.Vision.Title)
	assert.Empty(t, got.Recommendations)
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Vision.Timeline)
	require.Len(t, got.Vision.Components, 1)
	assert.Equal(t, 100, got.Vision.Components[0].Maturity)
	require.Len(t, got.Vision.Capabilities, 1)
	assert.Equal(t, 100, got.Vision.Capabilities[0].Maturity)
	imp := got.Vision.Capabilities[0].Importance
	assert.True(t, imp >= 70 && imp < 100, "importance %d", imp)
	assert.Equal(t, imp, got.Vision.Components[0].Importance)
}

func TestAnswer(t *testing.T) {
	fake := llmclient.NewFakeClient().Script(PhaseQuestion,
		llmclient.FakeResponse{Text: "  Focus on Phase B.  "},
		llmclient.FakeResponse{Text: "   "},
		llmclient.FakeResponse{Err: errors.New("down")},
	)
	an := newAnalyzer(fake)
	ctx := context.Background()

	got := an.Answer(ctx, "What next?", arch.FrameworkTOGAF)
	assert.Equal(t, Answer{Text: "Focus on Phase B."}, got)

	got = an.Answer(ctx, "What next?", arch.FrameworkZachman)
	assert.Equal(t, Answer{Text: FallbackAnswer(arch.FrameworkZachman), Fallback: true}, got)

	assert.Equal(t, FallbackAnswer(arch.FrameworkISO42001), an.AnswerQuestion(ctx, "q", arch.FrameworkISO42001))

	calls := fake.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, DefaultQuestionTokens, calls[0].MaxTokens)
	assert.False(t, calls[0].JSON)
	assert.Contains(t, calls[0].Prompt, "What next?")
}

func TestFallbackAnswersPerFramework(t *testing.T) {
	seen := map[string]bool{}
	for _, fw := range arch.Frameworks() {
		s := FallbackAnswer(fw)
		assert.NotEmpty(t, s)
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Equal(t, FallbackAnswer(arch.FrameworkTOGAF), FallbackAnswer("unknown"))
	assert.Equal(t, FrameworkContext(arch.FrameworkTOGAF), FrameworkContext("unknown"))
}
