package architecture

import "math"

// ClampScore rounds v to the nearest integer and clamps it to [0,100].
// NaN maps to 0.
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}

// Normalize returns c with both scores clamped.
func (c Component) Normalize() Component {
	c.Maturity = ClampScore(float64(c.Maturity))
	c.Importance = ClampScore(float64(c.Importance))
	return c
}

// Normalize returns c with both scores clamped.
func (c Capability) Normalize() Capability {
	c.Maturity = ClampScore(float64(c.Maturity))
	c.Importance = ClampScore(float64(c.Importance))
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func (c Component) Clone() Component {
	c.Dependencies = cloneStrings(c.Dependencies)
	c.Risks = cloneStrings(c.Risks)
	c.Opportunities = cloneStrings(c.Opportunities)
	return c
}

func (c Capability) Clone() Capability {
	c.Processes = cloneStrings(c.Processes)
	c.Systems = cloneStrings(c.Systems)
	c.Gaps = cloneStrings(c.Gaps)
	return c
}

func (p Phase) Clone() Phase {
	p.Deliverables = cloneStrings(p.Deliverables)
	return p
}

// CloneComponents deep-copies a component list; nil stays nil.
func CloneComponents(in []Component) []Component {
	if in == nil {
		return nil
	}
	out := make([]Component, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func CloneCapabilities(in []Capability) []Capability {
	if in == nil {
		return nil
	}
	out := make([]Capability, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func (v Vision) Clone() Vision {
	v.Objectives = cloneStrings(v.Objectives)
	v.Stakeholders = cloneStrings(v.Stakeholders)
	v.Constraints = cloneStrings(v.Constraints)
	v.Assumptions = cloneStrings(v.Assumptions)
	v.Components = CloneComponents(v.Components)
	v.Capabilities = CloneCapabilities(v.Capabilities)
	if v.Timeline != nil {
		tl := make([]Phase, len(v.Timeline))
		for i, p := range v.Timeline {
			tl[i] = p.Clone()
		}
		v.Timeline = tl
	}
	return v
}

func (r RawAnalysis) Clone() RawAnalysis {
	out := r
	if r.Business.Capabilities != nil {
		caps := make([]RawCapability, len(r.Business.Capabilities))
		for i, c := range r.Business.Capabilities {
			c.Processes = cloneStrings(c.Processes)
			c.Systems = cloneStrings(c.Systems)
			c.Gaps = cloneStrings(c.Gaps)
			if c.Maturity != nil {
				c.Maturity = Score(*c.Maturity)
			}
			if c.Importance != nil {
				c.Importance = Score(*c.Importance)
			}
			caps[i] = c
		}
		out.Business.Capabilities = caps
	}
	out.Business.Processes = cloneStrings(r.Business.Processes)
	out.Business.Stakeholders = cloneStrings(r.Business.Stakeholders)
	out.Application.Applications = cloneStrings(r.Application.Applications)
	out.Application.Services = cloneStrings(r.Application.Services)
	out.Application.Interfaces = cloneStrings(r.Application.Interfaces)
	out.Data.Entities = cloneStrings(r.Data.Entities)
	out.Data.Flows = cloneStrings(r.Data.Flows)
	out.Data.Governance = cloneStrings(r.Data.Governance)
	out.Technology.Infrastructure = cloneStrings(r.Technology.Infrastructure)
	out.Technology.Platforms = cloneStrings(r.Technology.Platforms)
	out.Technology.Networks = cloneStrings(r.Technology.Networks)
	return out
}

// Clone deep-copies the analysis, including its raw quadrants and vision.
func (a ScenarioAnalysis) Clone() ScenarioAnalysis {
	a.Analysis = a.Analysis.Clone()
	a.Recommendations = cloneStrings(a.Recommendations)
	a.Risks = cloneStrings(a.Risks)
	a.Opportunities = cloneStrings(a.Opportunities)
	a.Vision = a.Vision.Clone()
	return a
}
