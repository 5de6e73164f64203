package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arch "archlens/internal/types/architecture"
)

func TestBuildReport(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		fw      arch.Framework
		score   int
		firstID string
	}{
		{arch.FrameworkTOGAF, 70, "1"},
		{arch.FrameworkISO42001, 63, "4"},
		{arch.FrameworkZachman, 70, "1"},
		{arch.FrameworkCustom, 70, "1"},
	}
	for _, tc := range cases {
		t.Run(string(tc.fw), func(t *testing.T) {
			r := BuildReport(tc.fw, now)
			require.Len(t, r.Checks, 3)
			assert.Equal(t, tc.firstID, r.Checks[0].ID)
			assert.Equal(t, tc.score, r.OverallScore)
			assert.Equal(t, RiskCounts{Critical: 1, High: 2, Medium: 3, Low: 5}, r.Risks)
			assert.Equal(t, now, r.GeneratedAt)
			assert.Equal(t, tc.fw, r.Framework)
		})
	}
}

func TestChecksReturnsCopy(t *testing.T) {
	c := Checks(arch.FrameworkTOGAF)
	c[0].Score = 0
	assert.Equal(t, 95, Checks(arch.FrameworkTOGAF)[0].Score)
	assert.Equal(t, 0, OverallScore(nil))
}
