package stops

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func testOptimizer() *Optimizer {
	return NewOptimizer(config.Default().Stops, zerolog.Nop())
}

// TestPlan_PercentileWithEnoughLosses tests the percentile path: with eight
// loss magnitudes {1..8} the 75th percentile is 6.25, times safety 1.5 gives
// a 9.375% stop.
func TestPlan_PercentileWithEnoughLosses(t *testing.T) {
	o := testOptimizer()

	sample := types.PatternSample{
		Symbol:  "TEL",
		Returns: []float64{5, 6, -1, -2, -3, -4, -5, -6, -7, -8},
		AvgWin:  5.5,
	}
	plan := o.Plan(sample)

	assert.InDelta(t, -9.375, plan.StopDistancePct, 1e-9)
	assert.False(t, plan.FallbackUsed)
	assert.InDelta(t, 5.5/9.375, plan.RRR, 1e-9)
}

// TestPlan_MeanWithFewLosses tests that fewer losses than the percentile
// minimum fall back to the mean magnitude
func TestPlan_MeanWithFewLosses(t *testing.T) {
	o := testOptimizer()

	// Three losses averaging 2%, times safety 1.5 gives a 3% stop.
	sample := types.PatternSample{
		Symbol:  "DNB",
		Returns: []float64{4, 4, -1, -2, -3},
		AvgWin:  4.0,
	}
	plan := o.Plan(sample)

	assert.InDelta(t, -3.0, plan.StopDistancePct, 1e-9)
	assert.False(t, plan.FallbackUsed)
}

// TestPlan_FloorApplied tests that tight loss distributions are floored at
// the minimum stop
func TestPlan_FloorApplied(t *testing.T) {
	o := testOptimizer()

	// Mean loss 0.5 * 1.5 = 0.75, below the 1.5 floor.
	sample := types.PatternSample{
		Symbol:  "MOWI",
		Returns: []float64{3, -0.5, -0.5},
		AvgWin:  3.0,
	}
	plan := o.Plan(sample)

	assert.InDelta(t, -1.5, plan.StopDistancePct, 1e-9)
}

// TestPlan_WideStopNotClamped tests that a loss-derived stop wider than the
// configured maximum is kept as is, so the hard cap downstream can reject it
func TestPlan_WideStopNotClamped(t *testing.T) {
	o := testOptimizer()

	// Mean loss 8 * 1.5 = 12%, well above MaxStopPct.
	sample := types.PatternSample{
		Symbol:  "LEVG",
		Returns: []float64{10, -8, -8},
		AvgWin:  10.0,
	}
	plan := o.Plan(sample)

	assert.InDelta(t, -12.0, plan.StopDistancePct, 1e-9)
	assert.Greater(t, plan.Magnitude(), o.cfg.MaxStopPct)
}

// TestPlan_FallbackWithoutLosses tests the no-loss fallback: half the average
// win plus win dispersion, widened for sample size and bounded
func TestPlan_FallbackWithoutLosses(t *testing.T) {
	o := testOptimizer()

	// Four identical wins: stdev 0, avgWin 4 -> 2 * (1 + 1/2) = 3%.
	sample := types.PatternSample{
		Symbol:  "YAR",
		Returns: []float64{4, 4, 4, 4},
		AvgWin:  4.0,
	}
	plan := o.Plan(sample)

	assert.True(t, plan.FallbackUsed)
	assert.InDelta(t, -3.0, plan.StopDistancePct, 1e-9)
}

// TestPlan_FallbackBounded tests that the fallback path clamps to the
// configured [min, max] range on both ends
func TestPlan_FallbackBounded(t *testing.T) {
	o := testOptimizer()

	tight := o.Plan(types.PatternSample{
		Symbol:  "TINY",
		Returns: []float64{0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4, 0.4},
		AvgWin:  0.4,
	})
	wide := o.Plan(types.PatternSample{
		Symbol:  "WILD",
		Returns: []float64{20, 2, 30},
		AvgWin:  17.3333,
	})

	assert.InDelta(t, -o.cfg.MinStopPct, tight.StopDistancePct, 1e-9)
	assert.InDelta(t, -o.cfg.MaxStopPct, wide.StopDistancePct, 1e-9)
}

// TestPlan_EmptySample tests that a sample with no returns still yields a
// bounded fallback stop
func TestPlan_EmptySample(t *testing.T) {
	o := testOptimizer()

	plan := o.Plan(types.PatternSample{Symbol: "EMPTY"})

	assert.True(t, plan.FallbackUsed)
	assert.GreaterOrEqual(t, plan.Magnitude(), o.cfg.MinStopPct)
	assert.LessOrEqual(t, plan.Magnitude(), o.cfg.MaxStopPct)
}
