package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"archlens/internal/analysis"
	llmclient "archlens/internal/llm/client"
	"archlens/internal/store"
	arch "archlens/internal/types/architecture"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedAnalyzer blocks each Analyze call for a scenario until released.
type gatedAnalyzer struct {
	analysis.Analyzer
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGated() *gatedAnalyzer {
	return &gatedAnalyzer{gates: map[string]chan struct{}{}}
}

func (g *gatedAnalyzer) gate(s string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[s]
	if !ok {
		ch = make(chan struct{})
		g.gates[s] = ch
	}
	return ch
}

func (g *gatedAnalyzer) Analyze(ctx context.Context, scenario string, fw arch.Framework) arch.ScenarioAnalysis {
	<-g.gate(scenario)
	return analysis.Synthesize(scenario, fw)
}

func newWorkspace() *Workspace {
	return New(&analysis.Analyzer{LLM: llmclient.NewFakeClient()}, nil, Options{})
}

func TestAnalyzeStoresAndPublishes(t *testing.T) {
	w := newWorkspace()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Subscribe(ctx)

	a, err := w.Analyze(context.Background(), "Modernise billing", arch.FrameworkZachman)
	require.NoError(t, err)
	assert.Equal(t, arch.OriginModel, a.Origin)
	assert.Len(t, w.Store().Scenarios(), 1)
	assert.Equal(t, arch.FrameworkZachman, w.Framework())

	select {
	case ev := <-events:
		assert.Equal(t, EventScenarioAdded, ev.Kind)
		assert.Equal(t, a.ID, ev.Subject)
		assert.Equal(t, 1, ev.Scenarios)
		assert.Equal(t, len(a.Vision.Components), ev.Components)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
}

func TestStaleAnalysisIsDiscarded(t *testing.T) {
	g := newGated()
	w := New(g, store.New(), Options{})

	type result struct {
		a   arch.ScenarioAnalysis
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		a, err := w.Analyze(context.Background(), "first", arch.FrameworkTOGAF)
		firstDone <- result{a, err}
	}()
	require.Eventually(t, func() bool { return w.latest.Load() == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan result, 1)
	go func() {
		a, err := w.Analyze(context.Background(), "second", arch.FrameworkTOGAF)
		secondDone <- result{a, err}
	}()
	require.Eventually(t, func() bool { return w.latest.Load() == 2 }, time.Second, time.Millisecond)

	close(g.gate("second"))
	second := <-secondDone
	require.NoError(t, second.err)

	close(g.gate("first"))
	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrSuperseded)
	assert.Equal(t, "first", first.a.Scenario)

	scenarios := w.Store().Scenarios()
	require.Len(t, scenarios, 1)
	assert.Equal(t, "second", scenarios[0].Scenario)
}

func TestClearInvalidatesInFlight(t *testing.T) {
	g := newGated()
	w := New(g, nil, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := w.Analyze(context.Background(), "pending", arch.FrameworkTOGAF)
		done <- err
	}()
	require.Eventually(t, func() bool { return w.latest.Load() == 1 }, time.Second, time.Millisecond)
	w.Clear()
	close(g.gate("pending"))

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Empty(t, w.Store().Scenarios())
}

func TestMutationsPublish(t *testing.T) {
	w := newWorkspace()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Subscribe(ctx)

	c := w.AddComponent(arch.Component{Name: "Queue", Type: arch.LayerTechnology})
	m := 42
	assert.True(t, w.UpdateComponent(c.ID, store.ComponentPatch{Maturity: &m}))
	assert.False(t, w.UpdateComponent("nope", store.ComponentPatch{Maturity: &m}))
	w.AddCapability(arch.Capability{Name: "Billing"})
	w.UpdateVision(arch.Vision{ID: "v1", Title: "Manual"})
	w.Clear()

	want := []EventKind{EventComponentAdded, EventComponentUpdated, EventCapabilityAdded, EventVisionUpdated, EventCleared}
	for _, kind := range want {
		select {
		case ev := <-events:
			assert.Equal(t, kind, ev.Kind)
		case <-time.After(time.Second):
			t.Fatalf("missing %s", kind)
		}
	}
	assert.Empty(t, w.Store().Components())
}

func TestEventsFollowStoreOrder(t *testing.T) {
	w := newWorkspace()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Subscribe(ctx)

	const rounds = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := w.Analyze(context.Background(), "Merge warehouses", arch.FrameworkTOGAF); err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
		go func() {
			defer wg.Done()
			w.Clear()
		}()
	}
	wg.Wait()

	var last Event
	for i := 0; i < applied+rounds; i++ {
		select {
		case ev := <-events:
			switch ev.Kind {
			case EventScenarioAdded:
				assert.Positive(t, ev.Scenarios)
				assert.Positive(t, ev.Components)
			case EventCleared:
				assert.Zero(t, ev.Scenarios)
				assert.Zero(t, ev.Components)
			}
			last = ev
		case <-time.After(time.Second):
			t.Fatalf("missing event %d", i)
		}
	}
	st := w.Store().Snapshot()
	assert.Equal(t, len(st.Scenarios), last.Scenarios)
	assert.Equal(t, len(st.Components), last.Components)
}

func TestSubscriptionClosesWithContext(t *testing.T) {
	w := newWorkspace()
	ctx, cancel := context.WithCancel(context.Background())
	events := w.Subscribe(ctx)
	cancel()
	for range events {
	}
	w.AddComponent(arch.Component{Name: "after", Type: arch.LayerData})
}

func TestAskUsesCoach(t *testing.T) {
	w := newWorkspace()
	msg, err := w.Ask(context.Background(), "How mature are we?")
	require.NoError(t, err)
	assert.Equal(t, "fake answer", msg.Content)
	assert.Len(t, w.Coach().Messages(), 3)
}
