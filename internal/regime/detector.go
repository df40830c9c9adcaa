// Package regime aggregates the cross-sectional mix of signal
// classifications into a market stress index, one of five ordered regime
// tiers and a portfolio-wide position-size multiplier. The state is computed
// once per screening run and shared read-only by every candidate.
package regime

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Detector derives the regime state from classification counts.
type Detector struct {
	cfg config.RegimeConfig
	log zerolog.Logger
}

// NewDetector creates a regime detector with the given breakpoints.
func NewDetector(cfg config.RegimeConfig, log zerolog.Logger) *Detector {
	return &Detector{
		cfg: cfg,
		log: log.With().Str("component", "regime").Logger(),
	}
}

// Detect computes the regime state for one universe scan. The stress index
// is the RED share in percent; the tier follows from the actionable
// (non-RED) share against the configured breakpoints. An empty scan yields
// the conservative CAUTIOUS tier.
func (d *Detector) Detect(counts map[types.SignalClass]int) types.RegimeState {
	total := 0
	for _, c := range counts {
		total += c
	}

	snapshot := map[types.SignalClass]int{
		types.ClassGreen:  counts[types.ClassGreen],
		types.ClassYellow: counts[types.ClassYellow],
		types.ClassRed:    counts[types.ClassRed],
	}

	if total == 0 {
		return types.RegimeState{
			Counts:         snapshot,
			Label:          types.RegimeCautious,
			SizeMultiplier: d.cfg.CautiousMultiplier,
		}
	}

	stress := 100 * float64(counts[types.ClassRed]) / float64(total)
	actionable := 100 - stress
	label, multiplier := d.classify(actionable)

	state := types.RegimeState{
		Counts:             snapshot,
		StressIndex:        stress,
		Label:              label,
		SizeMultiplier:     multiplier,
		ImpliedCorrelation: impliedCorrelation(snapshot, total),
		HaltRecommended:    stress >= d.cfg.HaltStressIndex,
	}

	d.log.Info().
		Float64("stress_index", stress).
		Str("label", string(label)).
		Float64("multiplier", multiplier).
		Bool("halt", state.HaltRecommended).
		Msg("regime detected")

	return state
}

// classify maps the actionable share onto a tier and its multiplier.
func (d *Detector) classify(actionablePct float64) (types.RegimeLabel, float64) {
	switch {
	case actionablePct > d.cfg.HealthyMinPct:
		return types.RegimeHealthy, d.cfg.HealthyMultiplier
	case actionablePct > d.cfg.NormalMinPct:
		return types.RegimeNormal, d.cfg.NormalMultiplier
	case actionablePct > d.cfg.CautiousMinPct:
		return types.RegimeCautious, d.cfg.CautiousMultiplier
	case actionablePct > d.cfg.StressedMinPct:
		return types.RegimeStressed, d.cfg.StressedMultiplier
	default:
		return types.RegimeCrisis, d.cfg.CrisisMultiplier
	}
}

// impliedCorrelation derives an entropy-based proxy for average pairwise
// correlation from the classification distribution. A scan clustered in one
// class has low entropy: diversification is assumed to fail, so the implied
// correlation is high. The proxy is 1 minus the entropy normalized by its
// maximum over three classes.
func impliedCorrelation(counts map[types.SignalClass]int, total int) float64 {
	entropy := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log(p)
	}
	return 1 - entropy/math.Log(3)
}
