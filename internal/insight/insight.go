// Package insight derives dashboard and visualization view-models from the
// architecture store. Every function is pure.
package insight

import (
	"math"
	"sort"
	"strings"

	arch "archlens/internal/types/architecture"
)

type VisualizationType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// VisualizationTypes lists the views served under /api/insights/{id}.
func VisualizationTypes() []VisualizationType {
	return []VisualizationType{
		{ID: "heatmap", Label: "Capability Heatmap"},
		{ID: "architecture", Label: "Architecture Layers"},
		{ID: "network", Label: "Dependency Network"},
		{ID: "roadmap", Label: "Strategic Roadmap"},
	}
}

type HeatCell struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Maturity   int    `json:"maturity"`
	Importance int    `json:"importance"`
	// Gap is importance minus maturity; positive means under-invested.
	Gap  int    `json:"gap"`
	Band string `json:"band"`
}

// Heatmap orders capabilities by descending gap, then name.
func Heatmap(caps []arch.Capability) []HeatCell {
	out := make([]HeatCell, 0, len(caps))
	for _, c := range caps {
		out = append(out, HeatCell{
			ID:         c.ID,
			Name:       c.Name,
			Maturity:   c.Maturity,
			Importance: c.Importance,
			Gap:        c.Importance - c.Maturity,
			Band:       band(c.Maturity),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gap != out[j].Gap {
			return out[i].Gap > out[j].Gap
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func band(maturity int) string {
	switch {
	case maturity >= 80:
		return "high"
	case maturity >= 60:
		return "medium"
	}
	return "low"
}

type LayerSummary struct {
	Layer         arch.Layer `json:"layer"`
	Count         int        `json:"count"`
	AvgMaturity   int        `json:"avgMaturity"`
	AvgImportance int        `json:"avgImportance"`
	Components    []string   `json:"components"`
}

// Layers summarises components per layer; all four layers are always present.
func Layers(components []arch.Component) []LayerSummary {
	out := make([]LayerSummary, 0, 4)
	for _, l := range arch.Layers() {
		s := LayerSummary{Layer: l, Components: []string{}}
		var mat, imp int
		for _, c := range components {
			if c.Type != l {
				continue
			}
			s.Count++
			mat += c.Maturity
			imp += c.Importance
			s.Components = append(s.Components, c.Name)
		}
		if s.Count > 0 {
			s.AvgMaturity = roundDiv(mat, s.Count)
			s.AvgImportance = roundDiv(imp, s.Count)
		}
		out = append(out, s)
	}
	return out
}

type Node struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Layer    arch.Layer `json:"layer"`
	External bool       `json:"external,omitempty"`
}

type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Network builds a dependency graph. Dependencies naming an existing
// component (case-insensitive) point at it; others become external nodes.
func Network(components []arch.Component) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	byName := make(map[string]string, len(components))
	for _, c := range components {
		g.Nodes = append(g.Nodes, Node{ID: c.ID, Label: c.Name, Layer: c.Type})
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, dup := byName[key]; !dup {
			byName[key] = c.ID
		}
	}
	external := map[string]bool{}
	for _, c := range components {
		for _, dep := range c.Dependencies {
			key := strings.ToLower(strings.TrimSpace(dep))
			if key == "" {
				continue
			}
			to, ok := byName[key]
			if !ok {
				to = "external:" + key
				if !external[to] {
					external[to] = true
					g.Nodes = append(g.Nodes, Node{ID: to, Label: dep, External: true})
				}
			}
			if to == c.ID {
				continue
			}
			g.Edges = append(g.Edges, Edge{From: c.ID, To: to})
		}
	}
	return g
}

type RoadmapItem struct {
	Order        int              `json:"order"`
	Phase        string           `json:"phase"`
	Duration     string           `json:"duration"`
	Status       arch.PhaseStatus `json:"status"`
	Deliverables []string         `json:"deliverables"`
}

type Roadmap struct {
	Title    string        `json:"title"`
	Items    []RoadmapItem `json:"items"`
	Progress int           `json:"progress"`
}

// BuildRoadmap orders the vision timeline. Progress counts completed phases
// fully and in-progress phases as half.
func BuildRoadmap(v arch.Vision) Roadmap {
	r := Roadmap{Title: v.Title, Items: make([]RoadmapItem, 0, len(v.Timeline))}
	var done float64
	for i, p := range v.Timeline {
		r.Items = append(r.Items, RoadmapItem{
			Order:        i + 1,
			Phase:        p.Phase,
			Duration:     p.Duration,
			Status:       p.Status,
			Deliverables: append([]string{}, p.Deliverables...),
		})
		switch p.Status {
		case arch.PhaseCompleted:
			done++
		case arch.PhaseInProgress:
			done += 0.5
		}
	}
	if n := len(v.Timeline); n > 0 {
		r.Progress = int(math.Round(done / float64(n) * 100))
	}
	return r
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
