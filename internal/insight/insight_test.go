package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archlens/internal/analysis"
	"archlens/internal/store"
	arch "archlens/internal/types/architecture"
)

func TestHeatmapOrdersByGap(t *testing.T) {
	cells := Heatmap([]arch.Capability{
		{ID: "a", Name: "A", Maturity: 80, Importance: 85},
		{ID: "b", Name: "B", Maturity: 40, Importance: 90},
		{ID: "c", Name: "C", Maturity: 65, Importance: 70},
	})
	require.Len(t, cells, 3)
	assert.Equal(t, "B", cells[0].Name)
	assert.Equal(t, 50, cells[0].Gap)
	assert.Equal(t, "low", cells[0].Band)
	assert.Equal(t, "medium", cells[1].Band)
	assert.Equal(t, "high", cells[2].Band)
	assert.Empty(t, Heatmap(nil))
}

func TestLayersAlwaysFour(t *testing.T) {
	got := Layers([]arch.Component{
		{Name: "x", Type: arch.LayerData, Maturity: 50, Importance: 71},
		{Name: "y", Type: arch.LayerData, Maturity: 61, Importance: 80},
	})
	require.Len(t, got, 4)
	assert.Equal(t, arch.LayerBusiness, got[0].Layer)
	assert.Equal(t, 0, got[0].Count)
	assert.NotNil(t, got[0].Components)
	assert.Equal(t, 2, got[2].Count)
	assert.Equal(t, 56, got[2].AvgMaturity)
	assert.Equal(t, 76, got[2].AvgImportance)
	assert.Equal(t, []string{"x", "y"}, got[2].Components)
}

func TestNetworkResolvesNames(t *testing.T) {
	g := Network([]arch.Component{
		{ID: "app-0", Name: "Portal", Type: arch.LayerApplication, Dependencies: []string{"order api", "Payments"}},
		{ID: "service-0", Name: "Order API", Type: arch.LayerApplication, Dependencies: []string{"Order API"}},
		{ID: "data-0", Name: "Order", Type: arch.LayerData, Dependencies: []string{"payments"}},
	})
	assert.Len(t, g.Nodes, 4)
	assert.True(t, g.Nodes[3].External)
	assert.Equal(t, []Edge{
		{From: "app-0", To: "service-0"},
		{From: "app-0", To: "external:payments"},
		{From: "data-0", To: "external:payments"},
	}, g.Edges)
}

func TestBuildRoadmapProgress(t *testing.T) {
	r := BuildRoadmap(arch.Vision{Title: "T", Timeline: []arch.Phase{
		{Phase: "a", Status: arch.PhaseCompleted},
		{Phase: "b", Status: arch.PhaseInProgress},
		{Phase: "c", Status: arch.PhasePlanned},
		{Phase: "d", Status: arch.PhasePlanned},
	}})
	assert.Equal(t, 38, r.Progress)
	require.Len(t, r.Items, 4)
	assert.Equal(t, 4, r.Items[3].Order)
	assert.Equal(t, 0, BuildRoadmap(arch.Vision{}).Progress)
}

func TestBuildDashboard(t *testing.T) {
	s := store.New()
	s.AddScenario(analysis.Synthesize("retail", arch.FrameworkTOGAF))
	d := BuildDashboard(s.Snapshot(), arch.FrameworkTOGAF)

	assert.Equal(t, 1, d.Scenarios)
	assert.Equal(t, "Architecture Vision: retail", d.VisionTitle)
	assert.Equal(t, 4, d.Capabilities)
	require.Len(t, d.Mappings, 4)
	for _, m := range d.Mappings {
		assert.Equal(t, "mapped", m.Status)
	}
	assert.Equal(t, "Architecture Vision", d.Mappings[0].Component)
	assert.Contains(t, []string{"Low", "Medium", "High"}, d.RiskLevel)
	assert.Len(t, d.Visualizations, 4)

	empty := BuildDashboard(store.New().Snapshot(), arch.FrameworkISO42001)
	assert.Equal(t, "Unknown", empty.RiskLevel)
	assert.Len(t, empty.Insights, 4)
	assert.Equal(t, "AI Policy and Objectives", empty.Mappings[0].Component)
}
