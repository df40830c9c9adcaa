// Package sizing converts a signal tier into a volatility-normalized,
// regime-adjusted position size. FinalPct = BasePct * VolFactor *
// RegimeMultiplier, floored to the minimum cost-efficient trade size or
// forced to zero for tier NONE.
package sizing

import (
	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Sizer computes position sizes. Stateless and safe for concurrent use.
type Sizer struct {
	cfg          config.SizingConfig
	accountValue float64
	log          zerolog.Logger
}

// NewSizer creates a sizer for the given account value.
func NewSizer(cfg config.SizingConfig, accountValue float64, log zerolog.Logger) *Sizer {
	return &Sizer{
		cfg:          cfg,
		accountValue: accountValue,
		log:          log.With().Str("component", "sizing").Logger(),
	}
}

// Size computes the sizing chain for one candidate. instrumentVolPct is the
// volatility proxy (ATR percent); a non-positive proxy leaves the vol factor
// neutral at 1. regimeMultiplier comes from the run's shared RegimeState.
func (s *Sizer) Size(tier types.SignalTier, instrumentVolPct, regimeMultiplier float64) types.PositionSizing {
	base := s.basePct(tier)

	if tier == types.TierNone || base == 0 {
		// No floor for a non-signal: the size is exactly zero.
		return types.PositionSizing{
			Tier:             tier,
			RegimeMultiplier: regimeMultiplier,
			VolFactor:        1,
		}
	}

	volFactor := 1.0
	if instrumentVolPct > 0 {
		volFactor = s.cfg.TargetVolPct / instrumentVolPct
		if volFactor < s.cfg.VolFloor {
			volFactor = s.cfg.VolFloor
		}
		if volFactor > s.cfg.VolCeiling {
			volFactor = s.cfg.VolCeiling
		}
	}

	finalPct := base * volFactor * regimeMultiplier
	floorApplied := false
	if finalPct > 0 && finalPct < s.cfg.MinPositionPct {
		finalPct = s.cfg.MinPositionPct
		floorApplied = true
	}

	return types.PositionSizing{
		Tier:             tier,
		BasePct:          base,
		VolFactor:        volFactor,
		RegimeMultiplier: regimeMultiplier,
		FinalPct:         finalPct,
		FinalAmount:      s.accountValue * finalPct / 100,
		FloorApplied:     floorApplied,
	}
}

func (s *Sizer) basePct(tier types.SignalTier) float64 {
	switch tier {
	case types.TierStrong:
		return s.cfg.StrongPct
	case types.TierMedium:
		return s.cfg.MediumPct
	case types.TierWeak:
		return s.cfg.WeakPct
	default:
		return 0
	}
}
