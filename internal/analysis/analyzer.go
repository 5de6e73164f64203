package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	llmclient "archlens/internal/llm/client"
	"archlens/internal/metrics"
	arch "archlens/internal/types/architecture"
	"archlens/internal/util/jsonutil"
)

const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultScenarioTokens = 2000
	DefaultQuestionTokens = 300

	PhaseScenario = "scenario"
	PhaseQuestion = "question"
)

// Defaults applied to fields the model left out.
const (
	defaultVisionTitle       = "Target Architecture Vision"
	defaultVisionDescription = "Target architecture derived from the submitted business scenario."
)

var (
	defaultObjectives  = []string{"Improve operational efficiency", "Enable digital transformation"}
	defaultConstraints = []string{"Budget limitations"}
	defaultAssumptions = []string{"Stakeholders are available for validation"}
)

// Analyzer turns scenarios and questions into domain records. Analyze and
// Answer never fail: provider errors and unusable replies are replaced by
// fallback content.
type Analyzer struct {
	LLM            llmclient.TextClient
	Model          string
	ScenarioTokens int
	QuestionTokens int
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Projector      *Projector
	Now            func() time.Time
}

// Answer is a coaching reply. Fallback is set when the fixed framework
// sentence was used instead of model output.
type Answer struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

func (a *Analyzer) model() string {
	if a.Model != "" {
		return a.Model
	}
	return DefaultModel
}

func (a *Analyzer) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *Analyzer) projector() *Projector {
	if a.Projector == nil {
		return defaultProjector
	}
	return a.Projector
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now()
}

func budget(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Analyze performs one model call for scenario and normalises the reply.
func (a *Analyzer) Analyze(ctx context.Context, scenario string, fw arch.Framework) arch.ScenarioAnalysis {
	log := a.logger().With(zap.String("framework", string(fw)))

	if a.LLM == nil {
		return a.fallback(log, scenario, fw, "no_client", nil)
	}
	prompt, err := ScenarioPrompt(fw, scenario)
	if err != nil {
		return a.fallback(log, scenario, fw, "prompt", err)
	}
	callCtx := llmclient.WithPhase(llmclient.WithJSONResponse(ctx), PhaseScenario)
	reply, err := a.LLM.GenerateText(callCtx, prompt, a.model(), budget(a.ScenarioTokens, DefaultScenarioTokens))
	if err != nil {
		return a.fallback(log, scenario, fw, "transport", err)
	}
	obj, err := jsonutil.ParseObject(reply)
	if err != nil {
		return a.fallback(log, scenario, fw, "parse", err)
	}

	out := a.build(scenario, fw, decodeResponse(obj))
	a.Metrics.RecordAnalysis(string(fw), string(out.Origin))
	log.Debug("scenario analysed",
		zap.Int("components", len(out.Vision.Components)),
		zap.Int("capabilities", len(out.Vision.Capabilities)))
	return out
}

func (a *Analyzer) fallback(log *zap.Logger, scenario string, fw arch.Framework, reason string, err error) arch.ScenarioAnalysis {
	log.Warn("scenario analysis using fallback", zap.String("reason", reason), zap.Error(err))
	a.Metrics.RecordFallback("analyze", reason)
	out := synthesize(a.projector(), scenario, fw, a.now())
	a.Metrics.RecordAnalysis(string(fw), string(out.Origin))
	return out
}

func (a *Analyzer) build(scenario string, fw arch.Framework, r response) arch.ScenarioAnalysis {
	p := a.projector()
	raw := p.NormalizeCapabilities(r.Raw)

	timeline := r.Timeline
	if timeline == nil {
		timeline = []arch.Phase{}
	}
	return arch.ScenarioAnalysis{
		ID:              uuid.NewString(),
		Scenario:        scenario,
		Framework:       fw,
		Analysis:        raw,
		Recommendations: r.Recommendations,
		Risks:           r.Risks,
		Opportunities:   r.Opportunities,
		Vision: arch.Vision{
			ID:           uuid.NewString(),
			Title:        orDefault(r.VisionTitle, defaultVisionTitle),
			Description:  orDefault(r.VisionDescription, defaultVisionDescription),
			Objectives:   orDefaultList(r.Objectives, defaultObjectives),
			Stakeholders: nonNil(raw.Business.Stakeholders),
			Constraints:  orDefaultList(r.Constraints, defaultConstraints),
			Assumptions:  orDefaultList(r.Assumptions, defaultAssumptions),
			Components:   p.Project(raw),
			Capabilities: Capabilities(raw),
			Timeline:     timeline,
		},
		Origin:    arch.OriginModel,
		CreatedAt: a.now(),
	}
}

func orDefaultList(in, def []string) []string {
	if len(in) == 0 {
		return append([]string(nil), def...)
	}
	return in
}

// AnswerQuestion returns only the text of Answer.
func (a *Analyzer) AnswerQuestion(ctx context.Context, question string, fw arch.Framework) string {
	return a.Answer(ctx, question, fw).Text
}

// Answer performs one plain-text model call for question.
func (a *Analyzer) Answer(ctx context.Context, question string, fw arch.Framework) Answer {
	log := a.logger().With(zap.String("framework", string(fw)))
	fail := func(reason string, err error) Answer {
		log.Warn("question using fallback answer", zap.String("reason", reason), zap.Error(err))
		a.Metrics.RecordFallback("answer", reason)
		return Answer{Text: FallbackAnswer(fw), Fallback: true}
	}

	if a.LLM == nil {
		return fail("no_client", nil)
	}
	prompt, err := QuestionPrompt(fw, question)
	if err != nil {
		return fail("prompt", err)
	}
	callCtx := llmclient.WithPhase(ctx, PhaseQuestion)
	reply, err := a.LLM.GenerateText(callCtx, prompt, a.model(), budget(a.QuestionTokens, DefaultQuestionTokens))
	if err != nil {
		return fail("transport", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return fail("empty", llmclient.ErrEmptyResponse)
	}
	return Answer{Text: reply}
}
