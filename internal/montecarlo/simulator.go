// Package montecarlo estimates the probability that a sized position is
// stopped out before reaching its target over a holding horizon. Paths draw
// i.i.d. normal daily returns from the instrument's historical mean and
// deviation. The estimate is advisory: it never gates an ENTER/REJECT call
// on its own.
package montecarlo

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/stats"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Stop-out probability thresholds for the four risk tiers.
const (
	lowRiskBelow      = 0.15
	moderateRiskBelow = 0.30
	highRiskBelow     = 0.50
)

// Risk labels surfaced on the Decision object.
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
	RiskExtreme  = "EXTREME"
)

// Simulator runs stop-out simulations. The RNG is seeded per call so
// identical inputs reproduce identical estimates.
type Simulator struct {
	cfg config.MonteCarloConfig
	log zerolog.Logger
}

// NewSimulator creates a simulator with the given configuration.
func NewSimulator(cfg config.MonteCarloConfig, log zerolog.Logger) *Simulator {
	return &Simulator{
		cfg: cfg,
		log: log.With().Str("component", "montecarlo").Logger(),
	}
}

// Simulate walks price paths forward day by day. A path ends early when the
// price crosses the stop (recording the stop-level return, counted as a
// stop-out) or reaches the target (recording the target-level return);
// otherwise it records the final simulated return. daily is the historical
// daily-return sample in percent.
func (s *Simulator) Simulate(currentPrice, stopPrice, targetPrice float64, daily types.DailyReturnStats) types.StopOutEstimate {
	if currentPrice <= 0 || stopPrice >= currentPrice || s.cfg.Paths <= 0 {
		return types.StopOutEstimate{RiskLabel: RiskExtreme, StopOutProbability: 1}
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	finals := make([]float64, s.cfg.Paths)
	stopped := 0

	for i := 0; i < s.cfg.Paths; i++ {
		price := currentPrice
		for day := 0; day < s.cfg.HorizonDays; day++ {
			r := daily.Mean + daily.StdDev*rng.NormFloat64()
			price *= 1 + r/100

			if price <= stopPrice {
				price = stopPrice
				stopped++
				break
			}
			if targetPrice > currentPrice && price >= targetPrice {
				price = targetPrice
				break
			}
		}
		finals[i] = (price/currentPrice - 1) * 100
	}

	probability := float64(stopped) / float64(s.cfg.Paths)
	return types.StopOutEstimate{
		StopOutProbability: probability,
		MeanReturn:         stats.Mean(finals),
		P5Return:           stats.Percentile(finals, 5),
		P95Return:          stats.Percentile(finals, 95),
		RiskLabel:          riskLabel(probability),
	}
}

// riskLabel maps a stop-out probability onto the four-tier label.
func riskLabel(probability float64) string {
	switch {
	case probability < lowRiskBelow:
		return RiskLow
	case probability < moderateRiskBelow:
		return RiskModerate
	case probability < highRiskBelow:
		return RiskHigh
	default:
		return RiskExtreme
	}
}
