package analysis

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	arch "archlens/internal/types/architecture"
)

// Placeholder score ranges for records the source left unscored.
const (
	minDefaultMaturity   = 60
	minDefaultImportance = 70
)

// Projector maps a raw analysis to typed components. The zero value uses the
// process-wide random source for placeholder scores.
type Projector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewProjector returns a Projector whose placeholder scores come from a
// seeded source, so projections are reproducible.
func NewProjector(seed uint64) *Projector {
	return &Projector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var defaultProjector = &Projector{}

// Project converts raw into components using the default projector.
func Project(raw arch.RawAnalysis) []arch.Component {
	return defaultProjector.Project(raw)
}

func (p *Projector) intn(n int) int {
	if p == nil || p.rng == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

func (p *Projector) maturity() int   { return minDefaultMaturity + p.intn(100-minDefaultMaturity) }
func (p *Projector) importance() int { return minDefaultImportance + p.intn(100-minDefaultImportance) }

func (p *Projector) score(v *float64, placeholder func() int) int {
	if v == nil {
		return placeholder()
	}
	return arch.ClampScore(*v)
}

// Project emits business, application, service, data, infrastructure and
// platform components, in that order. Blank names are skipped.
func (p *Projector) Project(raw arch.RawAnalysis) []arch.Component {
	out := make([]arch.Component, 0)

	for i, c := range raw.Business.Capabilities {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, arch.Component{
			ID:            "business-" + strconv.Itoa(i),
			Name:          c.Name,
			Type:          arch.LayerBusiness,
			Description:   orDefault(c.Description, "Business capability"),
			Maturity:      p.score(c.Maturity, p.maturity),
			Importance:    p.score(c.Importance, p.importance),
			Dependencies:  nonNil(c.Systems),
			Risks:         nonNil(c.Gaps),
			Opportunities: nonNil(c.Processes),
		})
	}

	services := raw.Application.Services
	for i, name := range raw.Application.Applications {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, p.generic("app-", i, name, arch.LayerApplication,
			"Application supporting the scenario", firstN(services, 2),
			[]string{"Technical debt", "Integration complexity"},
			[]string{"Cloud migration", "API modernization"}))
	}
	for i, name := range services {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, p.generic("service-", i, name, arch.LayerApplication,
			"Application service", []string{},
			[]string{"Service availability"},
			[]string{"Reuse across channels"}))
	}
	for i, name := range raw.Data.Entities {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, p.generic("data-", i, name, arch.LayerData,
			"Data entity", firstN(raw.Data.Flows, 1),
			[]string{"Data quality"},
			[]string{"Analytics enablement"}))
	}
	for i, name := range raw.Technology.Infrastructure {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, p.generic("tech-infra-", i, name, arch.LayerTechnology,
			"Infrastructure component", []string{},
			[]string{"Capacity constraints"},
			[]string{"Automation"}))
	}
	for i, name := range raw.Technology.Platforms {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, p.generic("tech-platform-", i, name, arch.LayerTechnology,
			"Technology platform", []string{},
			[]string{"Vendor lock-in"},
			[]string{"Platform consolidation"}))
	}
	return out
}

func (p *Projector) generic(prefix string, i int, name string, layer arch.Layer, desc string, deps, risks, opps []string) arch.Component {
	return arch.Component{
		ID:            prefix + strconv.Itoa(i),
		Name:          name,
		Type:          layer,
		Description:   desc,
		Maturity:      p.maturity(),
		Importance:    p.importance(),
		Dependencies:  deps,
		Risks:         risks,
		Opportunities: opps,
	}
}

// NormalizeCapabilities fills missing scores with placeholders and clamps the
// rest, so capabilities and their projected components agree.
func (p *Projector) NormalizeCapabilities(raw arch.RawAnalysis) arch.RawAnalysis {
	raw = raw.Clone()
	for i := range raw.Business.Capabilities {
		c := &raw.Business.Capabilities[i]
		c.Maturity = arch.Score(float64(p.score(c.Maturity, p.maturity)))
		c.Importance = arch.Score(float64(p.score(c.Importance, p.importance)))
	}
	return raw
}

// Capabilities converts normalised raw capabilities into records with
// ids of the form capability-<index>.
func Capabilities(raw arch.RawAnalysis) []arch.Capability {
	out := make([]arch.Capability, 0, len(raw.Business.Capabilities))
	for i, c := range raw.Business.Capabilities {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		capability := arch.Capability{
			ID:          "capability-" + strconv.Itoa(i),
			Name:        c.Name,
			Description: orDefault(c.Description, "Business capability"),
			Processes:   nonNil(c.Processes),
			Systems:     nonNil(c.Systems),
			Gaps:        nonNil(c.Gaps),
		}
		if c.Maturity != nil {
			capability.Maturity = arch.ClampScore(*c.Maturity)
		}
		if c.Importance != nil {
			capability.Importance = arch.ClampScore(*c.Importance)
		}
		out = append(out, capability)
	}
	return out
}

func firstN(in []string, n int) []string {
	out := make([]string, 0, n)
	for _, s := range in {
		if len(out) == n {
			break
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
