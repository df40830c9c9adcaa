package validation

import "github.com/tlindeberg/signalscreen/internal/stats"

// Normalization targets for the composite quality score. A sub-term hitting
// its target earns the full weight; everything is capped so the score stays
// in [0, 100].
const (
	targetWinRate    = 0.65
	targetRiskReward = 3.0
	targetEVPct      = 2.0
	fullSampleSize   = 30
)

// Composite score weights.
const (
	weightWinRate      = 0.25
	weightRiskReward   = 0.20
	weightEV           = 0.20
	weightPassRate     = 0.15
	weightSignificance = 0.10
	weightSampleSize   = 0.05
	weightConsistency  = 0.05
)

type scoreInputs struct {
	adjustedWinRate float64
	avgWin          float64
	avgLoss         float64
	rawEV           float64
	passRate        float64
	significant     bool
	sampleSize      int
	returns         []float64
}

// compositeScore blends the validated sub-metrics into a 0-100 quality
// score.
func compositeScore(in scoreInputs) float64 {
	winRateScore := clamp01(in.adjustedWinRate / targetWinRate)

	riskReward := 0.0
	if in.avgLoss > 0 {
		riskReward = in.avgWin / in.avgLoss
	} else if in.avgWin > 0 {
		riskReward = targetRiskReward
	}
	riskRewardScore := clamp01(riskReward / targetRiskReward)

	evScore := clamp01(in.rawEV / targetEVPct)

	significanceScore := 0.0
	if in.significant {
		significanceScore = 1.0
	}

	sampleScore := clamp01(float64(in.sampleSize) / fullSampleSize)

	score := 100 * (weightWinRate*winRateScore +
		weightRiskReward*riskRewardScore +
		weightEV*evScore +
		weightPassRate*clamp01(in.passRate) +
		weightSignificance*significanceScore +
		weightSampleSize*sampleScore +
		weightConsistency*consistencyScore(in.returns))

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// consistencyScore rewards samples whose mean return dominates their
// dispersion. A non-positive mean scores zero; a dispersion-free positive
// mean scores one.
func consistencyScore(returns []float64) float64 {
	mean := stats.Mean(returns)
	if mean <= 0 {
		return 0
	}
	sd := stats.StdDev(returns)
	if sd == 0 {
		return 1
	}
	return clamp01(mean / sd)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
