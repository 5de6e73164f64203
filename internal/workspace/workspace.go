// Package workspace binds the analyzer, the architecture store and a coaching
// session, and publishes store changes to subscribers.
package workspace

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"archlens/internal/coach"
	"archlens/internal/metrics"
	"archlens/internal/store"
	arch "archlens/internal/types/architecture"
)

// ErrSuperseded is returned by Analyze when a newer request started before
// this one completed; the stale analysis is not stored.
var ErrSuperseded = errors.New("workspace: analysis superseded by a newer request")

// Analyzer is satisfied by *analysis.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, scenario string, fw arch.Framework) arch.ScenarioAnalysis
	coach.Answerer
}

type Workspace struct {
	analyzer Analyzer
	store    *store.Store
	session  *coach.Session
	logger   *zap.Logger
	metrics  *metrics.Metrics

	latest atomic.Uint64
	// commit serialises the token check, store writes and their events.
	commit sync.Mutex

	events *broadcaster
}

type Options struct {
	Framework arch.Framework
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Coach     coach.Options
}

func New(analyzer Analyzer, st *store.Store, opts Options) *Workspace {
	if st == nil {
		st = store.New()
	}
	fw := opts.Framework
	if !fw.Valid() {
		fw = arch.FrameworkTOGAF
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		analyzer: analyzer,
		store:    st,
		session:  coach.NewSession(analyzer, fw, opts.Coach),
		logger:   logger.Named("workspace"),
		metrics:  opts.Metrics,
		events:   newBroadcaster(),
	}
}

func (w *Workspace) Store() *store.Store       { return w.store }
func (w *Workspace) Coach() *coach.Session     { return w.session }
func (w *Workspace) Framework() arch.Framework { return w.session.Framework() }

// Analyze runs one analysis and stores it unless a newer Analyze call began
// in the meantime. The analysis is returned either way.
func (w *Workspace) Analyze(ctx context.Context, scenario string, fw arch.Framework) (arch.ScenarioAnalysis, error) {
	token := w.latest.Add(1)
	a := w.analyzer.Analyze(ctx, scenario, fw)

	w.commit.Lock()
	if w.latest.Load() != token {
		w.commit.Unlock()
		w.logger.Info("discarding stale analysis",
			zap.Uint64("token", token), zap.String("analysis_id", a.ID))
		return a, ErrSuperseded
	}
	w.store.AddScenario(a)
	w.publish(EventScenarioAdded, a.ID)
	w.commit.Unlock()

	w.session.SetFramework(fw)
	return a, nil
}

func (w *Workspace) SetFramework(fw arch.Framework) { w.session.SetFramework(fw) }

func (w *Workspace) Ask(ctx context.Context, question string) (coach.Message, error) {
	return w.session.Ask(ctx, question)
}

func (w *Workspace) UpdateVision(v arch.Vision) {
	w.commit.Lock()
	defer w.commit.Unlock()
	w.store.UpdateVision(v)
	w.publish(EventVisionUpdated, v.ID)
}

func (w *Workspace) AddComponent(c arch.Component) arch.Component {
	w.commit.Lock()
	defer w.commit.Unlock()
	c = w.store.AddComponent(c)
	w.publish(EventComponentAdded, c.ID)
	return c
}

// UpdateComponent reports whether id matched; no event is published otherwise.
func (w *Workspace) UpdateComponent(id string, patch store.ComponentPatch) bool {
	w.commit.Lock()
	defer w.commit.Unlock()
	if !w.store.UpdateComponent(id, patch) {
		return false
	}
	w.publish(EventComponentUpdated, id)
	return true
}

func (w *Workspace) AddCapability(c arch.Capability) arch.Capability {
	w.commit.Lock()
	defer w.commit.Unlock()
	c = w.store.AddCapability(c)
	w.publish(EventCapabilityAdded, c.ID)
	return c
}

// Clear empties the store and invalidates any in-flight analysis.
func (w *Workspace) Clear() {
	w.commit.Lock()
	defer w.commit.Unlock()
	w.latest.Add(1)
	w.store.Clear()
	w.publish(EventCleared, "")
}

// Subscribe returns a channel of store events that is closed when ctx ends.
// Slow subscribers drop events rather than block writers.
func (w *Workspace) Subscribe(ctx context.Context) <-chan Event {
	return w.events.subscribe(ctx)
}

// publish must be called with commit held so events follow store order.
func (w *Workspace) publish(kind EventKind, subject string) {
	st := w.store.Snapshot()
	w.metrics.SetStoreSize("scenarios", len(st.Scenarios))
	w.metrics.SetStoreSize("components", len(st.Components))
	w.metrics.SetStoreSize("capabilities", len(st.Capabilities))
	w.events.publish(Event{
		Kind:         kind,
		Subject:      subject,
		Scenarios:    len(st.Scenarios),
		Components:   len(st.Components),
		Capabilities: len(st.Capabilities),
		At:           time.Now().UTC(),
	})
}
