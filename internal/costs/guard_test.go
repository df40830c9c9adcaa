package costs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tlindeberg/signalscreen/internal/config"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/internal/refdata"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func testGuard(cfg config.CostConfig) *Guard {
	return NewGuard(cfg, "NOK", zerolog.Nop())
}

func largeCapNOK(symbol string) refdata.InstrumentInfo {
	return refdata.InstrumentInfo{
		Symbol:    symbol,
		Sector:    "ENERGY",
		Currency:  "NOK",
		Liquidity: refdata.LiquidityLargeCap,
		Product:   refdata.ProductEquity,
	}
}

// TestEvaluate_SmallPositionFeeMinimum tests the minimum-fee arithmetic on a
// small position: 0.15% of 1200 is 1.80, so the 39-unit minimum applies and
// one leg costs 3.25% of position value. With a 0.20% round-trip spread and
// minimal slippage the small position cannot carry its costs.
func TestEvaluate_SmallPositionFeeMinimum(t *testing.T) {
	cfg := config.Default().Costs
	cfg.SpreadLargeCapPct = 0.10
	g := testGuard(cfg)

	bd, err := g.Evaluate(Input{
		Symbol:         "SMALLPOS",
		PositionValue:  1200,
		GrossEdgePct:   2.5,
		Info:           largeCapNOK("SMALLPOS"),
		AvgDailyVolume: 1000000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 39.0, bd.FeeAmount)
	assert.Equal(t, 3.25, bd.FeePct)
	assert.InDelta(t, 6.72, bd.TotalCostPct, 1e-9) // 3.25*2 + 0.10*2 + 0.02
	assert.Less(t, bd.NetEdgePct, 0.0)
}

// TestEvaluate_NetEdgeIdentity tests that the net edge is exactly the gross
// edge minus total costs
func TestEvaluate_NetEdgeIdentity(t *testing.T) {
	g := testGuard(config.Default().Costs)

	bd, err := g.Evaluate(Input{
		Symbol:         "EQNR",
		PositionValue:  40000,
		GrossEdgePct:   4.0,
		Info:           largeCapNOK("EQNR"),
		AvgDailyVolume: 50000000,
	})

	assert.NoError(t, err)
	assert.Equal(t, bd.GrossEdgePct-bd.TotalCostPct, bd.NetEdgePct)
	assert.Greater(t, bd.NetEdgePct, 0.0)
	assert.Equal(t, types.CostRiskLow, bd.RiskLevel)
}

// TestEvaluate_NonPositiveEdge tests the short circuit on a zero or negative
// gross edge
func TestEvaluate_NonPositiveEdge(t *testing.T) {
	g := testGuard(config.Default().Costs)

	_, err := g.Evaluate(Input{Symbol: "FLAT", PositionValue: 10000, GrossEdgePct: 0})

	assert.Error(t, err)
	assert.Equal(t, screrrors.ErrorCategoryNonPositiveEdge, screrrors.CategoryOf(err))
}

// TestEvaluate_MissingVolumeData tests the conservative substitute: high
// slippage tier plus a warning, never a failure
func TestEvaluate_MissingVolumeData(t *testing.T) {
	cfg := config.Default().Costs
	g := testGuard(cfg)

	bd, err := g.Evaluate(Input{
		Symbol:        "NOVOL",
		PositionValue: 10000,
		GrossEdgePct:  3.0,
		Info:          largeCapNOK("NOVOL"),
	})

	assert.NoError(t, err)
	assert.Equal(t, cfg.SlippageHighPct, bd.SlippagePct)
	assert.Len(t, bd.Warnings, 1)
	assert.Equal(t, types.CostRiskMedium, bd.RiskLevel)
}

// TestSlippageCost_ParticipationTiers tests the volume-participation staging
func TestSlippageCost_ParticipationTiers(t *testing.T) {
	cfg := config.Default().Costs
	g := testGuard(cfg)

	// Positions against a 1M average daily volume: 0.5%, 1.5%, 3% and 8%
	// participation.
	cases := []struct {
		name     string
		position float64
		want     float64
		warnings int
	}{
		{"minimal", 5000, cfg.SlippageMinimalPct, 0},
		{"moderate", 15000, cfg.SlippageModeratePct, 0},
		{"high", 30000, cfg.SlippageHighPct, 1},
		{"severe", 80000, cfg.SlippageSeverePct, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pct, warnings := g.slippageCost(tc.position, 1000000)
			assert.Equal(t, tc.want, pct)
			assert.Len(t, warnings, tc.warnings)
		})
	}
}

// TestEvaluate_ForeignCurrency tests the fixed FX round trip and the
// statistical-extreme flag
func TestEvaluate_ForeignCurrency(t *testing.T) {
	cfg := config.Default().Costs
	g := testGuard(cfg)

	info := largeCapNOK("AAPL")
	info.Currency = "USD"

	calm, err := g.Evaluate(Input{
		Symbol: "AAPL", PositionValue: 20000, GrossEdgePct: 4.0,
		Info: info, AvgDailyVolume: 100000000, FXZScore: 0.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, cfg.FXRoundTripPct, calm.FXPct)
	assert.False(t, calm.FXExtreme)

	stretched, err := g.Evaluate(Input{
		Symbol: "AAPL", PositionValue: 20000, GrossEdgePct: 4.0,
		Info: info, AvgDailyVolume: 100000000, FXZScore: -2.4,
	})
	assert.NoError(t, err)
	assert.True(t, stretched.FXExtreme)
	assert.Equal(t, types.CostRiskHigh, stretched.RiskLevel)
}

// TestHoldingCost_LeveragedDecay tests the daily-reset decay charge and the
// tax-advantaged shelter
func TestHoldingCost_LeveragedDecay(t *testing.T) {
	cfg := config.Default().Costs
	taxed := testGuard(cfg)

	sheltered := cfg
	sheltered.TaxAdvantaged = true
	wrapped := testGuard(sheltered)

	// 0.05% per day over 10 holding days.
	assert.InDelta(t, 0.5, taxed.holdingCost(refdata.ProductLeveraged), 1e-9)
	assert.Equal(t, 0.0, taxed.holdingCost(refdata.ProductEquity))
	assert.Equal(t, 0.0, taxed.holdingCost(refdata.ProductFund))
	assert.Equal(t, 0.0, wrapped.holdingCost(refdata.ProductLeveraged))
}

// TestSpreadCost_LiquidityClasses tests the spread table lookup
func TestSpreadCost_LiquidityClasses(t *testing.T) {
	cfg := config.Default().Costs
	g := testGuard(cfg)

	assert.Equal(t, cfg.SpreadLargeCapPct, g.spreadCost(refdata.LiquidityLargeCap))
	assert.Equal(t, cfg.SpreadSmallCapPct, g.spreadCost(refdata.LiquiditySmallCap))
	assert.Equal(t, cfg.SpreadLeveragedPct, g.spreadCost(refdata.LiquidityLeveraged))
	assert.Equal(t, cfg.SpreadSmallCapPct, g.spreadCost(""))
}
