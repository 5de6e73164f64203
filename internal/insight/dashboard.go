package insight

import (
	"fmt"

	"archlens/internal/store"
	arch "archlens/internal/types/architecture"
)

type Mapping struct {
	Component  string     `json:"component"`
	Layer      arch.Layer `json:"layer"`
	Confidence int        `json:"confidence"`
	Status     string     `json:"status"`
}

type Insight struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type Dashboard struct {
	Framework      arch.Framework      `json:"framework"`
	VisionTitle    string              `json:"visionTitle,omitempty"`
	Scenarios      int                 `json:"scenarios"`
	Components     int                 `json:"components"`
	Capabilities   int                 `json:"capabilities"`
	AvgMaturity    int                 `json:"avgMaturity"`
	RiskLevel      string              `json:"riskLevel"`
	Mappings       []Mapping           `json:"mappings"`
	Insights       []Insight           `json:"insights"`
	Visualizations []VisualizationType `json:"visualizations"`
}

type frameworkConcept struct {
	name       string
	confidence int
}

// frameworkConcepts names the framework concept mapped onto each layer, in
// arch.Layers order.
var frameworkConcepts = map[arch.Framework][4]frameworkConcept{
	arch.FrameworkTOGAF: {
		{"Architecture Vision", 95}, {"Business Architecture", 88},
		{"Information Systems", 76}, {"Technology Architecture", 92},
	},
	arch.FrameworkZachman: {
		{"Business Model (Owner)", 90}, {"System Model (Designer)", 84},
		{"Data (What)", 80}, {"Technology Model (Builder)", 86},
	},
	arch.FrameworkISO42001: {
		{"AI Policy and Objectives", 85}, {"AI System Lifecycle", 78},
		{"Data for AI Systems", 74}, {"Operational Controls", 81},
	},
	arch.FrameworkCustom: {
		{"Business Principles", 88}, {"Application Principles", 82},
		{"Data Principles", 79}, {"Technology Principles", 85},
	},
}

// BuildDashboard summarises st for fw.
func BuildDashboard(st store.State, fw arch.Framework) Dashboard {
	d := Dashboard{
		Framework:      fw,
		Scenarios:      len(st.Scenarios),
		Components:     len(st.Components),
		Capabilities:   len(st.Capabilities),
		Mappings:       []Mapping{},
		Insights:       []Insight{},
		Visualizations: VisualizationTypes(),
	}
	if st.CurrentVision != nil {
		d.VisionTitle = st.CurrentVision.Title
	}
	if n := len(st.Components); n > 0 {
		sum := 0
		for _, c := range st.Components {
			sum += c.Maturity
		}
		d.AvgMaturity = roundDiv(sum, n)
	}
	d.RiskLevel = riskLevel(d.AvgMaturity, d.Components)

	concepts, ok := frameworkConcepts[fw]
	if !ok {
		concepts = frameworkConcepts[arch.FrameworkTOGAF]
	}
	for i, s := range Layers(st.Components) {
		m := Mapping{Component: concepts[i].name, Layer: s.Layer, Status: "unmapped"}
		switch {
		case s.Count >= 2:
			m.Status, m.Confidence = "mapped", concepts[i].confidence
		case s.Count == 1:
			m.Status, m.Confidence = "partial", concepts[i].confidence/2
		}
		d.Mappings = append(d.Mappings, m)
	}

	for _, cell := range Heatmap(st.Capabilities) {
		if cell.Gap < 20 {
			break
		}
		d.Insights = append(d.Insights, Insight{
			Kind:        "capability",
			Title:       cell.Name + " maturity gap",
			Description: fmt.Sprintf("Importance %d exceeds maturity %d by %d points.", cell.Importance, cell.Maturity, cell.Gap),
			Priority:    priority(cell.Gap),
		})
	}
	for _, m := range d.Mappings {
		if m.Status == "unmapped" {
			d.Insights = append(d.Insights, Insight{
				Kind:        "coverage",
				Title:       m.Component + " not covered",
				Description: fmt.Sprintf("No %s components are mapped for %s.", m.Layer, fw.DisplayName()),
				Priority:    "medium",
			})
		}
	}
	return d
}

func riskLevel(avgMaturity, components int) string {
	switch {
	case components == 0:
		return "Unknown"
	case avgMaturity >= 75:
		return "Low"
	case avgMaturity >= 55:
		return "Medium"
	}
	return "High"
}

func priority(gap int) string {
	if gap >= 35 {
		return "high"
	}
	return "medium"
}
