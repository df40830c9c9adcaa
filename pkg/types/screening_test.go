package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidatedEdge_TierBands tests the score bands behind the sizing tiers
func TestValidatedEdge_TierBands(t *testing.T) {
	cases := []struct {
		name        string
		score       float64
		significant bool
		sufficient  bool
		want        SignalTier
	}{
		{"strong needs significance", 85, true, true, TierStrong},
		{"high score without significance", 85, false, true, TierMedium},
		{"medium band", 55, false, true, TierMedium},
		{"weak band", 25, false, true, TierWeak},
		{"below weak band", 12, false, true, TierNone},
		{"insufficient sample", 85, true, false, TierNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edge := ValidatedEdge{
				QualityScore:     tc.score,
				Significant:      tc.significant,
				SufficientSample: tc.sufficient,
			}
			assert.Equal(t, tc.want, edge.Tier())
		})
	}
}

// TestValidatedEdge_ClassBands tests the traffic-light classification
func TestValidatedEdge_ClassBands(t *testing.T) {
	green := ValidatedEdge{QualityScore: 70, SufficientSample: true}
	yellow := ValidatedEdge{QualityScore: 40, SufficientSample: true}
	red := ValidatedEdge{QualityScore: 39.9, SufficientSample: true}
	thin := ValidatedEdge{QualityScore: 95, SufficientSample: false}

	assert.Equal(t, ClassGreen, green.Class())
	assert.Equal(t, ClassYellow, yellow.Class())
	assert.Equal(t, ClassRed, red.Class())
	assert.Equal(t, ClassRed, thin.Class())
}

// TestPatternSample_WinsAndLosses tests the sample partition helpers
func TestPatternSample_WinsAndLosses(t *testing.T) {
	sample := PatternSample{Returns: []float64{3.0, -1.0, 0.0, 2.5, -0.5}}

	assert.Equal(t, 2, sample.Wins())
	assert.Equal(t, []float64{-1.0, -0.5}, sample.Losses())
}

// TestStopPlan_Magnitude tests the sign convention helper
func TestStopPlan_Magnitude(t *testing.T) {
	assert.Equal(t, 3.0, StopPlan{StopDistancePct: -3.0}.Magnitude())
	assert.Equal(t, 0.0, StopPlan{}.Magnitude())
}
