// Package store holds the in-memory architecture state of one session.
package store

import (
	"sync"

	"github.com/google/uuid"

	arch "archlens/internal/types/architecture"
)

// State is a point-in-time copy of the store.
type State struct {
	Scenarios     []arch.ScenarioAnalysis `json:"scenarios"`
	CurrentVision *arch.Vision            `json:"currentVision"`
	Components    []arch.Component        `json:"components"`
	Capabilities  []arch.Capability       `json:"capabilities"`
}

// ComponentPatch is a partial component update; nil fields are left unchanged.
type ComponentPatch struct {
	Name          *string     `json:"name,omitempty"`
	Type          *arch.Layer `json:"type,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Maturity      *int        `json:"maturity,omitempty"`
	Importance    *int        `json:"importance,omitempty"`
	Dependencies  []string    `json:"dependencies,omitempty"`
	Risks         []string    `json:"risks,omitempty"`
	Opportunities []string    `json:"opportunities,omitempty"`
}

func (p ComponentPatch) apply(c arch.Component) arch.Component {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil && p.Type.Valid() {
		c.Type = *p.Type
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Maturity != nil {
		c.Maturity = arch.ClampScore(float64(*p.Maturity))
	}
	if p.Importance != nil {
		c.Importance = arch.ClampScore(float64(*p.Importance))
	}
	if p.Dependencies != nil {
		c.Dependencies = append([]string(nil), p.Dependencies...)
	}
	if p.Risks != nil {
		c.Risks = append([]string(nil), p.Risks...)
	}
	if p.Opportunities != nil {
		c.Opportunities = append([]string(nil), p.Opportunities...)
	}
	return c
}

// Store is safe for concurrent use. Every mutation builds a new state and
// swaps it in; records are never shared with callers.
type Store struct {
	mu sync.RWMutex
	st State
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.st = emptyState()
	return s
}

func emptyState() State {
	return State{
		Scenarios:    []arch.ScenarioAnalysis{},
		Components:   []arch.Component{},
		Capabilities: []arch.Capability{},
	}
}

func (s *Store) update(fn func(prev State) State) {
	s.mu.Lock()
	s.st = fn(s.st)
	s.mu.Unlock()
}

// AddScenario appends a to the history and makes its vision current.
func (s *Store) AddScenario(a arch.ScenarioAnalysis) {
	a = a.Clone()
	s.update(func(prev State) State {
		scenarios := make([]arch.ScenarioAnalysis, 0, len(prev.Scenarios)+1)
		scenarios = append(scenarios, prev.Scenarios...)
		scenarios = append(scenarios, a)
		v := a.Vision.Clone()
		return State{
			Scenarios:     scenarios,
			CurrentVision: &v,
			Components:    nonNilComponents(arch.CloneComponents(a.Vision.Components)),
			Capabilities:  nonNilCapabilities(arch.CloneCapabilities(a.Vision.Capabilities)),
		}
	})
}

// UpdateVision replaces the current vision without touching history.
// Component and capability scores are clamped.
func (s *Store) UpdateVision(v arch.Vision) {
	v = v.Clone()
	for i := range v.Components {
		v.Components[i] = v.Components[i].Normalize()
	}
	for i := range v.Capabilities {
		v.Capabilities[i] = v.Capabilities[i].Normalize()
	}
	s.update(func(prev State) State {
		return State{
			Scenarios:     prev.Scenarios,
			CurrentVision: &v,
			Components:    nonNilComponents(arch.CloneComponents(v.Components)),
			Capabilities:  nonNilCapabilities(arch.CloneCapabilities(v.Capabilities)),
		}
	})
}

// AddComponent appends c and returns the stored record. A missing or
// already used id is replaced with a fresh one.
func (s *Store) AddComponent(c arch.Component) arch.Component {
	c = c.Clone().Normalize()
	s.update(func(prev State) State {
		if c.ID == "" || hasComponent(prev.Components, c.ID) {
			c.ID = "component-" + uuid.NewString()
		}
		next := prev
		next.Components = append(append(make([]arch.Component, 0, len(prev.Components)+1), prev.Components...), c)
		return next
	})
	return c.Clone()
}

// UpdateComponent merges patch into the component with id. It reports
// whether a component matched; an unknown id leaves the state untouched.
func (s *Store) UpdateComponent(id string, patch ComponentPatch) bool {
	found := false
	s.update(func(prev State) State {
		idx := -1
		for i, c := range prev.Components {
			if c.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return prev
		}
		found = true
		next := prev
		next.Components = make([]arch.Component, len(prev.Components))
		copy(next.Components, prev.Components)
		next.Components[idx] = patch.apply(prev.Components[idx].Clone())
		return next
	})
	return found
}

// AddCapability appends c; ids are assigned as in AddComponent.
func (s *Store) AddCapability(c arch.Capability) arch.Capability {
	c = c.Clone().Normalize()
	s.update(func(prev State) State {
		if c.ID == "" || hasCapability(prev.Capabilities, c.ID) {
			c.ID = "capability-" + uuid.NewString()
		}
		next := prev
		next.Capabilities = append(append(make([]arch.Capability, 0, len(prev.Capabilities)+1), prev.Capabilities...), c)
		return next
	})
	return c.Clone()
}

func hasComponent(cs []arch.Component, id string) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

func hasCapability(cs []arch.Capability, id string) bool {
	for _, c := range cs {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clear resets the store to its initial empty state.
func (s *Store) Clear() {
	s.update(func(State) State { return emptyState() })
}

func (s *Store) current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// ComponentsByType returns current components of layer t in stored order.
func (s *Store) ComponentsByType(t arch.Layer) []arch.Component {
	out := []arch.Component{}
	for _, c := range s.current().Components {
		if c.Type == t {
			out = append(out, c.Clone())
		}
	}
	return out
}

// CapabilitiesByMaturity returns current capabilities with maturity >= min.
func (s *Store) CapabilitiesByMaturity(min int) []arch.Capability {
	out := []arch.Capability{}
	for _, c := range s.current().Capabilities {
		if c.Maturity >= min {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *Store) Scenarios() []arch.ScenarioAnalysis {
	st := s.current()
	out := make([]arch.ScenarioAnalysis, len(st.Scenarios))
	for i, a := range st.Scenarios {
		out[i] = a.Clone()
	}
	return out
}

func (s *Store) CurrentVision() (arch.Vision, bool) {
	st := s.current()
	if st.CurrentVision == nil {
		return arch.Vision{}, false
	}
	return st.CurrentVision.Clone(), true
}

func (s *Store) Components() []arch.Component {
	return nonNilComponents(arch.CloneComponents(s.current().Components))
}

func (s *Store) Capabilities() []arch.Capability {
	return nonNilCapabilities(arch.CloneCapabilities(s.current().Capabilities))
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() State {
	st := s.current()
	out := State{
		Scenarios:    make([]arch.ScenarioAnalysis, len(st.Scenarios)),
		Components:   nonNilComponents(arch.CloneComponents(st.Components)),
		Capabilities: nonNilCapabilities(arch.CloneCapabilities(st.Capabilities)),
	}
	for i, a := range st.Scenarios {
		out.Scenarios[i] = a.Clone()
	}
	if st.CurrentVision != nil {
		v := st.CurrentVision.Clone()
		out.CurrentVision = &v
	}
	return out
}

func nonNilComponents(in []arch.Component) []arch.Component {
	if in == nil {
		return []arch.Component{}
	}
	return in
}

func nonNilCapabilities(in []arch.Capability) []arch.Capability {
	if in == nil {
		return []arch.Capability{}
	}
	return in
}
