package sizing

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func testSizer() *Sizer {
	return NewSizer(config.Default().Sizing, 100000, zerolog.Nop())
}

// TestSize_TierTable tests base allocations per tier at neutral volatility
// and a healthy regime
func TestSize_TierTable(t *testing.T) {
	s := testSizer()

	strong := s.Size(types.TierStrong, 2.0, 1.0)
	medium := s.Size(types.TierMedium, 2.0, 1.0)
	weak := s.Size(types.TierWeak, 2.0, 1.0)

	assert.Equal(t, 4.0, strong.FinalPct)
	assert.Equal(t, 4000.0, strong.FinalAmount)
	assert.Equal(t, 2.0, medium.FinalPct)
	assert.Equal(t, 0.5, weak.FinalPct)
}

// TestSize_TierNoneIsExactlyZero tests that a non-signal gets no floor
func TestSize_TierNoneIsExactlyZero(t *testing.T) {
	s := testSizer()

	sizing := s.Size(types.TierNone, 2.0, 1.0)

	assert.Equal(t, 0.0, sizing.FinalPct)
	assert.Equal(t, 0.0, sizing.FinalAmount)
	assert.False(t, sizing.FloorApplied)
}

// TestSize_VolFactorClamps tests the volatility normalization and its clamps
func TestSize_VolFactorClamps(t *testing.T) {
	s := testSizer()

	calm := s.Size(types.TierStrong, 0.5, 1.0)    // 2.0/0.5 = 4, clamped to 2
	wild := s.Size(types.TierStrong, 10.0, 1.0)   // 2.0/10 = 0.2, clamped to 0.5
	missing := s.Size(types.TierStrong, 0.0, 1.0) // no proxy: neutral

	assert.Equal(t, 2.0, calm.VolFactor)
	assert.Equal(t, 8.0, calm.FinalPct)
	assert.Equal(t, 0.5, wild.VolFactor)
	assert.Equal(t, 2.0, wild.FinalPct)
	assert.Equal(t, 1.0, missing.VolFactor)
}

// TestSize_RegimeMultiplierMonotonic tests that a lower regime multiplier
// never yields a larger position
func TestSize_RegimeMultiplierMonotonic(t *testing.T) {
	s := testSizer()

	multipliers := []float64{1.0, 0.8, 0.6, 0.4, 0.2}
	prev := s.Size(types.TierStrong, 2.0, multipliers[0]).FinalPct
	for _, m := range multipliers[1:] {
		cur := s.Size(types.TierStrong, 2.0, m).FinalPct
		assert.LessOrEqual(t, cur, prev, "multiplier %v", m)
		prev = cur
	}
}

// TestSize_FloorApplied tests that a positive but sub-minimum size is raised
// to the cost-efficient floor
func TestSize_FloorApplied(t *testing.T) {
	s := testSizer()

	// Weak 0.5% * vol 0.5 * crisis 0.2 = 0.05%, below the 0.5% floor.
	sizing := s.Size(types.TierWeak, 10.0, 0.2)

	assert.True(t, sizing.FloorApplied)
	assert.Equal(t, 0.5, sizing.FinalPct)
	assert.Equal(t, 500.0, sizing.FinalAmount)
}
