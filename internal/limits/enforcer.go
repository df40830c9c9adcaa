// Package limits enforces the two non-waivable rejection rules: the
// absolute stop-distance cap and the per-sector concentration cap with its
// escalating score bar. Both are REJECTs, never clamps.
package limits

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// Enforcer holds the running per-sector acceptance state for one screening
// run. It is NOT safe for concurrent use: the sector cap is defined over
// already-accepted higher-ranked candidates, so callers must feed candidates
// sequentially in descending score order. Create a fresh Enforcer per run.
type Enforcer struct {
	stopCapPct float64
	cfg        config.LimitConfig
	log        zerolog.Logger

	sectorCounts map[string]int
	sectorBest   map[string]float64
}

// NewEnforcer creates a per-run limits enforcer.
func NewEnforcer(stopCfg config.StopConfig, cfg config.LimitConfig, log zerolog.Logger) *Enforcer {
	return &Enforcer{
		stopCapPct:   stopCfg.AbsoluteCapPct,
		cfg:          cfg,
		log:          log.With().Str("component", "limits").Logger(),
		sectorCounts: make(map[string]int),
		sectorBest:   make(map[string]float64),
	}
}

// CheckStopCap rejects any stop wider than the absolute cap. If the stop
// required is too wide, the trade does not exist: no score can waive this.
func (e *Enforcer) CheckStopCap(plan types.StopPlan) error {
	if plan.Magnitude() > e.stopCapPct {
		return screrrors.NewHardLimitError("limits", "stop cap",
			fmt.Sprintf("stop %.2f%% exceeds absolute cap %.2f%%", plan.Magnitude(), e.stopCapPct))
	}
	return nil
}

// AdmitSector applies the sector concentration cap for a candidate about to
// be accepted. The first MaxPerSector candidates in a sector pass
// automatically; later ones must exceed the best already-admitted score in
// that sector by the configured penalty. On success the candidate is
// recorded against the sector.
func (e *Enforcer) AdmitSector(sector string, score float64) error {
	count := e.sectorCounts[sector]
	if count >= e.cfg.MaxPerSector {
		bar := e.sectorBest[sector] * (1 + e.cfg.SectorPenalty)
		if score <= bar {
			return screrrors.NewHardLimitError("limits", "sector cap",
				fmt.Sprintf("sector %s already holds %d positions, score %.1f does not clear the %.1f bar",
					sector, count, score, bar))
		}
		e.log.Debug().
			Str("sector", sector).
			Float64("score", score).
			Float64("bar", bar).
			Msg("sector cap escalated bar cleared")
	}

	e.sectorCounts[sector] = count + 1
	if score > e.sectorBest[sector] {
		e.sectorBest[sector] = score
	}
	return nil
}

// SectorCount reports how many candidates a sector has admitted so far.
func (e *Enforcer) SectorCount(sector string) int {
	return e.sectorCounts[sector]
}
