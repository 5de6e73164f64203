package architecture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFramework(t *testing.T) {
	cases := map[string]Framework{
		"TOGAF":     FrameworkTOGAF,
		"togaf":     FrameworkTOGAF,
		" Zachman ": FrameworkZachman,
		"ISO 42001": FrameworkISO42001,
		"iso-42001": FrameworkISO42001,
		"custom":    FrameworkCustom,
	}
	for in, want := range cases {
		got, err := ParseFramework(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFramework("archimate")
	assert.ErrorIs(t, err, ErrUnknownFramework)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 51, ClampScore(50.6))
	assert.Equal(t, 0, ClampScore(math.NaN()))
}

func TestParsePhaseStatus(t *testing.T) {
	assert.Equal(t, PhaseInProgress, ParsePhaseStatus("In Progress"))
	assert.Equal(t, PhaseInProgress, ParsePhaseStatus("in_progress"))
	assert.Equal(t, PhaseCompleted, ParsePhaseStatus("completed"))
	assert.Equal(t, PhasePlanned, ParsePhaseStatus(""))
	assert.Equal(t, PhasePlanned, ParsePhaseStatus("someday"))
}

func TestVisionCloneDoesNotAlias(t *testing.T) {
	v := Vision{
		Objectives: []string{"a"},
		Components: []Component{{ID: "c1", Risks: []string{"r"}}},
		Timeline:   []Phase{{Phase: "p", Deliverables: []string{"d"}}},
	}
	cp := v.Clone()
	cp.Objectives[0] = "changed"
	cp.Components[0].Risks[0] = "changed"
	cp.Timeline[0].Deliverables[0] = "changed"

	assert.Equal(t, "a", v.Objectives[0])
	assert.Equal(t, "r", v.Components[0].Risks[0])
	assert.Equal(t, "d", v.Timeline[0].Deliverables[0])
}
