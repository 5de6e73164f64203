package analysis

import (
	"time"

	"github.com/google/uuid"

	arch "archlens/internal/types/architecture"
)

// FallbackRaw returns the fixed four-quadrant analysis used when the model is
// unavailable or its reply cannot be parsed.
func FallbackRaw() arch.RawAnalysis {
	return arch.RawAnalysis{
		Business: arch.BusinessQuadrant{
			Capabilities: []arch.RawCapability{
				{
					Name:        "Customer Management",
					Description: "Acquire, serve and retain customers across channels",
					Maturity:    arch.Score(65), Importance: arch.Score(90),
					Processes: []string{"Customer onboarding", "Customer support"},
					Systems:   []string{"CRM System"},
					Gaps:      []string{"Fragmented customer view"},
				},
				{
					Name:        "Order Management",
					Description: "Capture, fulfil and track customer orders",
					Maturity:    arch.Score(70), Importance: arch.Score(85),
					Processes: []string{"Order capture", "Order fulfilment"},
					Systems:   []string{"ERP System", "Order API"},
					Gaps:      []string{"Manual exception handling"},
				},
				{
					Name:        "Product Management",
					Description: "Define and maintain the product catalogue",
					Maturity:    arch.Score(55), Importance: arch.Score(75),
					Processes: []string{"Catalogue maintenance"},
					Systems:   []string{"E-commerce Platform"},
					Gaps:      []string{"Slow product onboarding"},
				},
				{
					Name:        "Financial Management",
					Description: "Invoice, collect and report on revenue",
					Maturity:    arch.Score(75), Importance: arch.Score(80),
					Processes: []string{"Invoicing", "Financial reporting"},
					Systems:   []string{"ERP System", "Payment Service"},
					Gaps:      []string{"Delayed reconciliation"},
				},
			},
			Processes:    []string{"Order to cash", "Customer service", "Product lifecycle"},
			Stakeholders: []string{"Business Leadership", "IT Department", "Operations", "Customers"},
		},
		Application: arch.ApplicationQuadrant{
			Applications: []string{"CRM System", "ERP System", "E-commerce Platform"},
			Services:     []string{"Customer API", "Order API", "Payment Service"},
			Interfaces:   []string{"REST APIs", "Message Queue"},
		},
		Data: arch.DataQuadrant{
			Entities:   []string{"Customer", "Order", "Product", "Invoice"},
			Flows:      []string{"Customer Data Flow", "Order Processing Flow"},
			Governance: []string{"Data Privacy Policy", "Data Quality Standards"},
		},
		Technology: arch.TechnologyQuadrant{
			Infrastructure: []string{"Cloud Infrastructure", "Database Servers"},
			Platforms:      []string{"Kubernetes", "API Gateway"},
			Networks:       []string{"Corporate Network", "VPN"},
		},
	}
}

func fallbackTimeline() []arch.Phase {
	return []arch.Phase{
		{Phase: "Foundation", Duration: "3 months", Deliverables: []string{"Current state assessment", "Target architecture"}, Status: arch.PhasePlanned},
		{Phase: "Implementation", Duration: "6 months", Deliverables: []string{"Core platform migration", "Integration layer"}, Status: arch.PhasePlanned},
		{Phase: "Optimization", Duration: "3 months", Deliverables: []string{"Performance tuning", "Capability uplift"}, Status: arch.PhasePlanned},
	}
}

// Synthesize builds a complete analysis without consulting the model. Only
// the vision title reads scenario.
func Synthesize(scenario string, fw arch.Framework) arch.ScenarioAnalysis {
	return synthesize(defaultProjector, scenario, fw, time.Now().UTC())
}

func synthesize(p *Projector, scenario string, fw arch.Framework, now time.Time) arch.ScenarioAnalysis {
	raw := FallbackRaw()
	return arch.ScenarioAnalysis{
		ID:        uuid.NewString(),
		Scenario:  scenario,
		Framework: fw,
		Analysis:  raw,
		Recommendations: []string{
			"Establish an architecture governance board",
			"Consolidate customer data into a single source of truth",
			"Expose core business services through managed APIs",
		},
		Risks: []string{
			"Legacy system dependencies",
			"Data quality issues",
			"Change resistance",
		},
		Opportunities: []string{
			"Process automation",
			"Cloud cost optimization",
			"Improved customer insight",
		},
		Vision: arch.Vision{
			ID:           uuid.NewString(),
			Title:        "Architecture Vision: " + scenario,
			Description:  "Target architecture derived from the submitted business scenario.",
			Objectives:   []string{"Improve operational efficiency", "Enhance customer experience", "Enable digital transformation"},
			Stakeholders: append([]string(nil), raw.Business.Stakeholders...),
			Constraints:  []string{"Budget limitations", "Regulatory compliance", "Legacy system integration"},
			Assumptions:  []string{"Executive sponsorship is secured", "Cloud adoption is approved"},
			Components:   p.Project(raw),
			Capabilities: Capabilities(raw),
			Timeline:     fallbackTimeline(),
		},
		Origin:    arch.OriginFallback,
		CreatedAt: now,
	}
}
