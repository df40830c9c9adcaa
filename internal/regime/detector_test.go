package regime

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func testDetector() *Detector {
	return NewDetector(config.Default().Regime, zerolog.Nop())
}

// TestDetect_TierBreakpoints tests the actionable-share breakpoints across
// all five tiers
func TestDetect_TierBreakpoints(t *testing.T) {
	d := testDetector()

	cases := []struct {
		name       string
		green      int
		red        int
		label      types.RegimeLabel
		multiplier float64
	}{
		{"all actionable", 10, 0, types.RegimeHealthy, 1.0},
		{"60 pct actionable", 6, 4, types.RegimeNormal, 0.8},
		{"40 pct actionable", 4, 6, types.RegimeCautious, 0.6},
		{"20 pct actionable", 2, 8, types.RegimeStressed, 0.4},
		{"all red", 0, 10, types.RegimeCrisis, 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := d.Detect(map[types.SignalClass]int{
				types.ClassGreen: tc.green,
				types.ClassRed:   tc.red,
			})
			assert.Equal(t, tc.label, state.Label)
			assert.Equal(t, tc.multiplier, state.SizeMultiplier)
			assert.InDelta(t, 100*float64(tc.red)/10, state.StressIndex, 1e-9)
		})
	}
}

// TestDetect_YellowCountsAsActionable tests that YELLOW signals do not add
// to stress
func TestDetect_YellowCountsAsActionable(t *testing.T) {
	d := testDetector()

	state := d.Detect(map[types.SignalClass]int{
		types.ClassYellow: 8,
		types.ClassRed:    2,
	})

	assert.Equal(t, 20.0, state.StressIndex)
	assert.Equal(t, types.RegimeHealthy, state.Label)
}

// TestDetect_EmptyScan tests the conservative default when no candidates
// were classified
func TestDetect_EmptyScan(t *testing.T) {
	d := testDetector()

	state := d.Detect(map[types.SignalClass]int{})

	assert.Equal(t, types.RegimeCautious, state.Label)
	assert.Equal(t, 0.6, state.SizeMultiplier)
	assert.False(t, state.HaltRecommended)
}

// TestDetect_HaltThreshold tests the halt recommendation at the configured
// stress index
func TestDetect_HaltThreshold(t *testing.T) {
	d := testDetector()

	below := d.Detect(map[types.SignalClass]int{types.ClassGreen: 11, types.ClassRed: 89})
	at := d.Detect(map[types.SignalClass]int{types.ClassGreen: 10, types.ClassRed: 90})

	assert.False(t, below.HaltRecommended)
	assert.True(t, at.HaltRecommended)
	assert.Equal(t, types.RegimeCrisis, at.Label)
}

// TestDetect_ImpliedCorrelation tests the entropy proxy: a single-class scan
// implies full correlation, a uniform scan implies none
func TestDetect_ImpliedCorrelation(t *testing.T) {
	d := testDetector()

	clustered := d.Detect(map[types.SignalClass]int{types.ClassRed: 30})
	uniform := d.Detect(map[types.SignalClass]int{
		types.ClassGreen:  10,
		types.ClassYellow: 10,
		types.ClassRed:    10,
	})

	assert.InDelta(t, 1.0, clustered.ImpliedCorrelation, 1e-9)
	assert.InDelta(t, 0.0, uniform.ImpliedCorrelation, 1e-9)
	assert.False(t, math.IsNaN(uniform.ImpliedCorrelation))
}
