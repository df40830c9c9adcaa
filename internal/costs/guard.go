// Package costs nets execution costs against a candidate's gross edge:
// round-trip fees and spread, volume-participation slippage, currency
// conversion and the tax-account holding cost for daily-reset products.
// The identity NetEdgePct = GrossEdgePct - TotalCostPct holds exactly.
package costs

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tlindeberg/signalscreen/internal/config"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/internal/refdata"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Volume-participation staging thresholds, as percent of average daily
// traded volume.
const (
	participationMinimalBelow  = 1.0
	participationModerateBelow = 2.0
	participationHighBelow     = 5.0
)

// Input is the per-candidate view the guard evaluates.
type Input struct {
	Symbol         string
	PositionValue  float64 // account currency
	GrossEdgePct   float64
	Info           refdata.InstrumentInfo
	AvgDailyVolume float64 // account currency, 0 when unavailable
	FXZScore       float64
}

// Guard evaluates execution costs. Stateless and safe for concurrent use.
type Guard struct {
	cfg          config.CostConfig
	homeCurrency string
	log          zerolog.Logger
}

// NewGuard creates a cost guard for the given home currency.
func NewGuard(cfg config.CostConfig, homeCurrency string, log zerolog.Logger) *Guard {
	return &Guard{
		cfg:          cfg,
		homeCurrency: homeCurrency,
		log:          log.With().Str("component", "costs").Logger(),
	}
}

// Evaluate computes the cost breakdown for one candidate. A non-positive
// gross edge short-circuits the analysis with a NonPositiveEdge error; the
// orchestrator turns that into a REJECT. Missing volume data substitutes a
// conservative high slippage estimate and records a warning instead of
// failing the candidate.
func (g *Guard) Evaluate(in Input) (types.CostBreakdown, error) {
	if in.GrossEdgePct <= 0 {
		return types.CostBreakdown{}, screrrors.NewNonPositiveEdgeError("costs", in.GrossEdgePct)
	}

	var warnings []string

	feeAmount, feePct := g.feeCost(in.PositionValue)
	if in.PositionValue <= 0 {
		warnings = append(warnings, "position value is zero, fee cost not estimated")
	}

	spreadPct := g.spreadCost(in.Info.Liquidity)
	slippagePct, slipWarnings := g.slippageCost(in.PositionValue, in.AvgDailyVolume)
	warnings = append(warnings, slipWarnings...)

	fxPct, fxExtreme, fxWarnings := g.fxCost(in.Info.Currency, in.FXZScore)
	warnings = append(warnings, fxWarnings...)

	holdingPct := g.holdingCost(in.Info.Product)

	totalPct := feePct*2 + spreadPct*2 + slippagePct + fxPct + holdingPct

	breakdown := types.CostBreakdown{
		FeeAmount:      feeAmount,
		FeePct:         feePct,
		SpreadPct:      spreadPct,
		SlippagePct:    slippagePct,
		FXPct:          fxPct,
		HoldingCostPct: holdingPct,
		TotalCostPct:   totalPct,
		GrossEdgePct:   in.GrossEdgePct,
		NetEdgePct:     in.GrossEdgePct - totalPct,
		FXExtreme:      fxExtreme,
		RiskLevel:      riskLevel(len(warnings), fxExtreme),
		Warnings:       warnings,
	}

	g.log.Debug().
		Str("symbol", in.Symbol).
		Float64("total_cost_pct", totalPct).
		Float64("net_edge_pct", breakdown.NetEdgePct).
		Str("risk", string(breakdown.RiskLevel)).
		Msg("cost breakdown evaluated")

	return breakdown, nil
}

// feeCost computes the single-leg fee in account currency with the tier
// minimum applied, as an exact decimal, and its percentage of position
// value. Doubling for the round trip happens in the total.
func (g *Guard) feeCost(positionValue float64) (amount, pct float64) {
	if positionValue <= 0 {
		return 0, 0
	}
	value := decimal.NewFromFloat(positionValue)
	rate := decimal.NewFromFloat(g.cfg.FeeRatePct).Div(decimal.NewFromInt(100))
	minimum := decimal.NewFromFloat(g.cfg.FeeMinimum)

	fee := value.Mul(rate)
	if fee.LessThan(minimum) {
		fee = minimum
	}
	feePct := fee.Div(value).Mul(decimal.NewFromInt(100))
	return fee.InexactFloat64(), feePct.InexactFloat64()
}

// spreadCost returns the single-leg spread estimate for the liquidity class.
func (g *Guard) spreadCost(class refdata.LiquidityClass) float64 {
	switch class {
	case refdata.LiquidityLargeCap:
		return g.cfg.SpreadLargeCapPct
	case refdata.LiquidityLeveraged:
		return g.cfg.SpreadLeveragedPct
	default:
		return g.cfg.SpreadSmallCapPct
	}
}

// slippageCost stages the estimate on position size as a fraction of average
// daily volume. Missing volume data substitutes the high tier.
func (g *Guard) slippageCost(positionValue, avgDailyVolume float64) (float64, []string) {
	if avgDailyVolume <= 0 {
		warn := screrrors.NewDataUnavailableWarning("costs", "daily volume data")
		return g.cfg.SlippageHighPct, []string{warn.Message}
	}
	if positionValue <= 0 {
		return g.cfg.SlippageMinimalPct, nil
	}

	participation := positionValue / avgDailyVolume * 100
	switch {
	case participation < participationMinimalBelow:
		return g.cfg.SlippageMinimalPct, nil
	case participation < participationModerateBelow:
		return g.cfg.SlippageModeratePct, nil
	case participation < participationHighBelow:
		return g.cfg.SlippageHighPct,
			[]string{fmt.Sprintf("position is %.1f%% of daily volume", participation)}
	default:
		return g.cfg.SlippageSeverePct,
			[]string{fmt.Sprintf("position is %.1f%% of daily volume, expect severe slippage", participation)}
	}
}

// fxCost is zero for home-currency instruments and the fixed round-trip
// conversion percentage otherwise, with an extremity flag when the currency
// pair trades beyond the configured z-score.
func (g *Guard) fxCost(currency string, zScore float64) (pct float64, extreme bool, warnings []string) {
	if currency == "" || currency == g.homeCurrency {
		return 0, false, nil
	}
	pct = g.cfg.FXRoundTripPct
	if zScore > g.cfg.FXZScoreExtreme || zScore < -g.cfg.FXZScoreExtreme {
		extreme = true
		warnings = append(warnings,
			fmt.Sprintf("currency %s trading at statistical extreme (z=%.2f)", currency, zScore))
	}
	return pct, extreme, warnings
}

// holdingCost charges the per-day structural decay of leveraged daily-reset
// products, prorated over the configured holding period. Tax-advantaged
// wrappers shelter the decay drag, plain equities and physical-backed funds
// carry none.
func (g *Guard) holdingCost(product refdata.ProductClass) float64 {
	if product != refdata.ProductLeveraged || g.cfg.TaxAdvantaged {
		return 0
	}
	return g.cfg.LeveragedDecayPerDayPct * float64(g.cfg.HoldingDays)
}

// riskLevel classifies execution risk from the warning count and the
// currency-extremity flag.
func riskLevel(warningCount int, fxExtreme bool) types.CostRisk {
	score := warningCount
	if fxExtreme {
		score += 2
	}
	switch {
	case score == 0:
		return types.CostRiskLow
	case score == 1:
		return types.CostRiskMedium
	case score <= 3:
		return types.CostRiskHigh
	default:
		return types.CostRiskExtreme
	}
}
