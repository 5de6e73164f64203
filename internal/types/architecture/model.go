package architecture

import (
	"strings"
	"time"
)

// Layer is the architectural layer a component belongs to.
type Layer string

const (
	LayerBusiness    Layer = "business"
	LayerApplication Layer = "application"
	LayerData        Layer = "data"
	LayerTechnology  Layer = "technology"
)

// Layers lists the four layers in projection order.
func Layers() []Layer {
	return []Layer{LayerBusiness, LayerApplication, LayerData, LayerTechnology}
}

func (l Layer) Valid() bool {
	switch l {
	case LayerBusiness, LayerApplication, LayerData, LayerTechnology:
		return true
	}
	return false
}

type Component struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          Layer    `json:"type"`
	Description   string   `json:"description"`
	Maturity      int      `json:"maturity"`
	Importance    int      `json:"importance"`
	Dependencies  []string `json:"dependencies"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

type Capability struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Maturity    int      `json:"maturity"`
	Importance  int      `json:"importance"`
	Processes   []string `json:"processes"`
	Systems     []string `json:"systems"`
	Gaps        []string `json:"gaps"`
}

type PhaseStatus string

const (
	PhasePlanned    PhaseStatus = "planned"
	PhaseInProgress PhaseStatus = "in-progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// ParsePhaseStatus maps free-form status text to a PhaseStatus.
// Anything unrecognised is treated as planned.
func ParsePhaseStatus(s string) PhaseStatus {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "in-progress", "inprogress", "active", "ongoing":
		return PhaseInProgress
	case "completed", "complete", "done":
		return PhaseCompleted
	}
	return PhasePlanned
}

type Phase struct {
	Phase        string      `json:"phase"`
	Duration     string      `json:"duration"`
	Deliverables []string    `json:"deliverables"`
	Status       PhaseStatus `json:"status"`
}

// Vision is one scenario's worth of architecture. It owns its components,
// capabilities and phases exclusively.
type Vision struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Objectives   []string     `json:"objectives"`
	Stakeholders []string     `json:"stakeholders"`
	Constraints  []string     `json:"constraints"`
	Assumptions  []string     `json:"assumptions"`
	Components   []Component  `json:"components"`
	Capabilities []Capability `json:"capabilities"`
	Timeline     []Phase      `json:"timeline"`
}

// Origin records whether an analysis came from the model or the fallback.
type Origin string

const (
	OriginModel    Origin = "model"
	OriginFallback Origin = "fallback"
)

type ScenarioAnalysis struct {
	ID              string      `json:"id"`
	Scenario        string      `json:"scenario"`
	Framework       Framework   `json:"framework"`
	Analysis        RawAnalysis `json:"analysis"`
	Recommendations []string    `json:"recommendations"`
	Risks           []string    `json:"risks"`
	Opportunities   []string    `json:"opportunities"`
	Vision          Vision      `json:"vision"`
	Origin          Origin      `json:"origin"`
	CreatedAt       time.Time   `json:"createdAt"`
}
