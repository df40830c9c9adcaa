// Package validation implements the statistical validator: Bayesian win-rate
// shrinkage toward a configured prior, seeded bootstrap resampling of the
// forward-return sample, a one-sided significance test of the mean return,
// a Kaufman-style efficiency ratio and a composite 0-100 quality score.
package validation

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/stats"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

const significanceLevel = 0.05

// Validator validates pattern samples. It is stateless between calls and
// safe for concurrent use; the bootstrap RNG is created per call from the
// configured seed so results are reproducible.
type Validator struct {
	cfg config.ValidationConfig
	log zerolog.Logger
}

// NewValidator creates a validator with the given configuration.
func NewValidator(cfg config.ValidationConfig, log zerolog.Logger) *Validator {
	return &Validator{
		cfg: cfg,
		log: log.With().Str("component", "validator").Logger(),
	}
}

// Validate derives a ValidatedEdge from one pattern sample. Samples below
// the minimum size get the conservative default: prior win rate, zero edge,
// zero score, SufficientSample=false. The bootstrap is skipped in that case.
func (v *Validator) Validate(sample types.PatternSample) types.ValidatedEdge {
	n := len(sample.Returns)
	if n < v.cfg.MinSampleSize {
		v.log.Debug().
			Str("symbol", sample.Symbol).
			Int("sample_size", n).
			Int("min_required", v.cfg.MinSampleSize).
			Msg("insufficient sample, returning conservative default")
		return types.ValidatedEdge{
			AdjustedWinRate:  v.cfg.PriorWinRate,
			EfficiencyRatio:  efficiencyRatio(sample.Prices, v.cfg.EfficiencyLookback),
			SufficientSample: false,
		}
	}

	wins := sample.Wins()
	adjusted := (v.cfg.PriorWinRate*v.cfg.PriorPseudoCount + float64(wins)) /
		(v.cfg.PriorPseudoCount + float64(n))
	edge := adjusted - v.cfg.PriorWinRate

	avgWin, avgLoss := effectiveAverages(sample)
	rawWinRate := float64(wins) / float64(n)
	rawEV := rawWinRate*avgWin - (1-rawWinRate)*avgLoss

	boot := runBootstrap(sample.Returns, v.cfg.BootstrapIters, v.cfg.BootstrapSeed)
	pValue, significant := meanAboveZero(sample.Returns)
	er := efficiencyRatio(sample.Prices, v.cfg.EfficiencyLookback)

	score := compositeScore(scoreInputs{
		adjustedWinRate: adjusted,
		avgWin:          avgWin,
		avgLoss:         avgLoss,
		rawEV:           rawEV,
		passRate:        boot.PassRate,
		significant:     significant,
		sampleSize:      n,
		returns:         sample.Returns,
	})

	return types.ValidatedEdge{
		AdjustedWinRate:  adjusted,
		Edge:             edge,
		RawEV:            rawEV,
		BootstrapEV:      boot.MeanEV,
		BootstrapStdDev:  boot.StdDev,
		EVLow:            boot.Low,
		EVHigh:           boot.High,
		PassRate:         boot.PassRate,
		PValue:           pValue,
		Significant:      significant,
		EfficiencyRatio:  er,
		QualityScore:     score,
		SufficientSample: true,
	}
}

// effectiveAverages uses the detector-supplied win/loss averages when
// present and derives them from the return sample otherwise. Both values
// are positive magnitudes.
func effectiveAverages(sample types.PatternSample) (avgWin, avgLoss float64) {
	avgWin = sample.AvgWin
	avgLoss = sample.AvgLoss
	if avgWin > 0 && avgLoss > 0 {
		return avgWin, avgLoss
	}

	var winSum, lossSum float64
	var winCount, lossCount int
	for _, r := range sample.Returns {
		if r > 0 {
			winSum += r
			winCount++
		} else if r < 0 {
			lossSum += r
			lossCount++
		}
	}
	if avgWin <= 0 && winCount > 0 {
		avgWin = winSum / float64(winCount)
	}
	if avgLoss <= 0 && lossCount > 0 {
		avgLoss = -lossSum / float64(lossCount)
	}
	return avgWin, avgLoss
}

// meanAboveZero runs a one-sided test of whether the sample mean return
// exceeds zero, using the normal approximation to the t statistic.
func meanAboveZero(returns []float64) (pValue float64, significant bool) {
	n := len(returns)
	sd := stats.StdDev(returns)
	if n < 2 || sd == 0 {
		return 1, false
	}
	t := stats.Mean(returns) / (sd / math.Sqrt(float64(n)))
	p := 1 - stats.NormalCDF(t)
	return p, p < significanceLevel
}

// efficiencyRatio computes the Kaufman efficiency ratio over the trailing
// lookback window of the price series: net movement over total movement,
// bounded [0, 1]. Without a usable price series the ratio is neutral (0.5).
func efficiencyRatio(prices []float64, lookback int) float64 {
	if len(prices) < 2 {
		return 0.5
	}
	window := prices
	if lookback >= 2 && len(prices) > lookback {
		window = prices[len(prices)-lookback:]
	}

	totalMove := 0.0
	for i := 1; i < len(window); i++ {
		totalMove += math.Abs(window[i] - window[i-1])
	}
	if totalMove == 0 {
		return 0
	}
	er := math.Abs(window[len(window)-1]-window[0]) / totalMove
	if er > 1 {
		er = 1
	}
	return er
}
