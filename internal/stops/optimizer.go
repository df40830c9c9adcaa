// Package stops derives a stop-loss distance from the historical
// distribution of adverse excursions in a pattern sample. The absolute stop
// cap is intentionally NOT applied here: a loss-derived stop wider than the
// cap must surface as a hard-limit rejection downstream, not be clamped into
// looking tradeable.
package stops

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/stats"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Optimizer computes adverse-excursion stop plans. Stateless and safe for
// concurrent use.
type Optimizer struct {
	cfg config.StopConfig
	log zerolog.Logger
}

// NewOptimizer creates a stop optimizer with the given configuration.
func NewOptimizer(cfg config.StopConfig, log zerolog.Logger) *Optimizer {
	return &Optimizer{
		cfg: cfg,
		log: log.With().Str("component", "stops").Logger(),
	}
}

// Plan derives the stop plan for one sample. With enough recorded losses the
// stop is the configured percentile of their magnitudes times the safety
// factor; with few losses the mean magnitude is used instead. Without any
// losses a sample-size and win-dispersion derived fallback is used, bounded
// to [MinStopPct, MaxStopPct]. The loss-derived path is floored but never
// ceiling-clamped.
func (o *Optimizer) Plan(sample types.PatternSample) types.StopPlan {
	losses := sample.Losses()
	if len(losses) == 0 {
		return o.fallbackPlan(sample)
	}

	magnitudes := make([]float64, len(losses))
	for i, l := range losses {
		magnitudes[i] = -l
	}

	var base float64
	if len(magnitudes) >= o.cfg.MinLossesForPercentile {
		base = stats.Percentile(magnitudes, o.cfg.LossPercentile)
	} else {
		base = stats.Mean(magnitudes)
	}

	stop := base * o.cfg.SafetyFactor
	if stop < o.cfg.MinStopPct {
		stop = o.cfg.MinStopPct
	}

	return types.StopPlan{
		StopDistancePct: -stop,
		SafetyFactor:    o.cfg.SafetyFactor,
		RRR:             riskReward(sample.AvgWin, stop),
		FallbackUsed:    false,
	}
}

// fallbackPlan estimates a stop when the sample has no recorded losses:
// start from half the average win plus the win dispersion, widen for small
// samples, then bound to the configured range.
func (o *Optimizer) fallbackPlan(sample types.PatternSample) types.StopPlan {
	wins := make([]float64, 0, len(sample.Returns))
	for _, r := range sample.Returns {
		if r > 0 {
			wins = append(wins, r)
		}
	}

	avgWin := sample.AvgWin
	if avgWin <= 0 {
		avgWin = stats.Mean(wins)
	}

	n := len(sample.Returns)
	if n == 0 {
		n = sample.Occurrences
	}
	sizeAdj := 1.0
	if n > 0 {
		sizeAdj = 1 + 1/math.Sqrt(float64(n))
	}

	stop := (avgWin/2 + stats.StdDev(wins)) * sizeAdj
	if stop < o.cfg.MinStopPct {
		stop = o.cfg.MinStopPct
	}
	if stop > o.cfg.MaxStopPct {
		stop = o.cfg.MaxStopPct
	}

	o.log.Debug().
		Str("symbol", sample.Symbol).
		Float64("stop_pct", stop).
		Msg("no historical losses, using fallback stop estimate")

	return types.StopPlan{
		StopDistancePct: -stop,
		SafetyFactor:    o.cfg.SafetyFactor,
		RRR:             riskReward(avgWin, stop),
		FallbackUsed:    true,
	}
}

// riskReward is the MAE-based risk/reward ratio: average win over stop
// magnitude.
func riskReward(avgWin, stopMagnitude float64) float64 {
	if stopMagnitude <= 0 {
		return 0
	}
	return avgWin / stopMagnitude
}
