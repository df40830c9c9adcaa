package screener

import (
	"errors"

	"github.com/tlindeberg/signalscreen/internal/costs"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/internal/limits"
	"github.com/tlindeberg/signalscreen/internal/montecarlo"
	"github.com/tlindeberg/signalscreen/internal/refdata"
	"github.com/tlindeberg/signalscreen/internal/stats"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// candidateEval is the progressively-enriched per-candidate record. Each
// stage takes the record by value and returns a copy carrying the previous
// stage's fields plus its own; nothing is mutated in place across stages.
type candidateEval struct {
	candidate types.Candidate
	info      refdata.InstrumentInfo

	state    types.CandidateState
	edge     *types.ValidatedEdge
	stop     *types.StopPlan
	sizing   *types.PositionSizing
	costs    *types.CostBreakdown
	sim      *types.StopOutEstimate
	warnings []string

	rejected bool
	reason   string
}

// reject marks the evaluation terminally rejected, keeping the state of the
// last completed stage.
func (e candidateEval) reject(reason string) candidateEval {
	e.rejected = true
	e.reason = reason
	return e
}

// warn appends a warning without changing the evaluation's course.
func (e candidateEval) warn(msg string) candidateEval {
	e.warnings = append(e.warnings, msg)
	return e
}

// score is the pre-sort ranking score: the composite quality score once
// validated, zero before that.
func (e candidateEval) score() float64 {
	if e.edge == nil {
		return 0
	}
	return e.edge.QualityScore
}

// stageValidateAndStop runs the statistical validator, the stop optimizer
// and the absolute stop-cap check. These are the per-candidate stages with
// no dependency on the cross-sectional regime, so they run first and feed
// the regime detector. The stop-cap check reads no per-run state and is safe
// inside the parallel pass.
func (o *Orchestrator) stageValidateAndStop(enf *limits.Enforcer) func(candidateEval) candidateEval {
	return func(eval candidateEval) candidateEval {
		edge := o.validator.Validate(eval.candidate.Sample)
		eval.edge = &edge
		if !edge.SufficientSample {
			return eval.reject(screrrors.NewInsufficientSampleError(
				"validator", len(eval.candidate.Sample.Returns), o.cfg.Validation.MinSampleSize).Message)
		}
		eval.state = types.StateValidated

		plan := o.stops.Plan(eval.candidate.Sample)
		eval.stop = &plan
		if err := enf.CheckStopCap(plan); err != nil {
			return eval.reject(reasonOf(err))
		}
		eval.state = types.StateStopSized
		return eval
	}
}

// stageSizeAndCost runs the regime-aware stages: position sizing, the
// advisory Monte Carlo stop-out simulation and the execution cost guard.
// regimeMultiplier is fixed for the whole run before this stage starts.
func (o *Orchestrator) stageSizeAndCost(regime types.RegimeState) func(candidateEval) candidateEval {
	return func(eval candidateEval) candidateEval {
		if eval.rejected {
			return eval
		}

		sz := o.sizer.Size(eval.edge.Tier(), o.volProxy(eval.candidate), regime.SizeMultiplier)
		eval.sizing = &sz
		eval.state = types.StatePositionSized

		eval = o.simulateStopOut(eval)

		if sz.FinalPct == 0 {
			// Nothing to trade: no cost analysis for a zero-size position.
			return eval
		}

		breakdown, err := o.costGuard.Evaluate(costs.Input{
			Symbol:         eval.candidate.Symbol,
			PositionValue:  sz.FinalAmount,
			GrossEdgePct:   eval.edge.RawEV,
			Info:           eval.info,
			AvgDailyVolume: eval.candidate.AvgDailyVolume,
			FXZScore:       eval.candidate.FXZScore,
		})
		if err != nil {
			var se *screrrors.ScreenError
			if errors.As(err, &se) && se.Category == screrrors.ErrorCategoryNonPositiveEdge {
				return eval.reject(se.Message)
			}
			return eval.reject(err.Error())
		}
		eval.costs = &breakdown
		eval.warnings = append(eval.warnings, breakdown.Warnings...)
		eval.state = types.StateCostEvaluated
		return eval
	}
}

// simulateStopOut attaches the advisory stop-out estimate when the inputs
// exist. A missing daily-return sample degrades to a warning, never a
// rejection.
func (o *Orchestrator) simulateStopOut(eval candidateEval) candidateEval {
	if len(eval.candidate.DailyReturns) < 2 {
		return eval.warn(screrrors.NewDataUnavailableWarning("montecarlo", "daily return history").Message)
	}

	price := eval.candidate.Price
	if price <= 0 {
		return eval.warn(screrrors.NewDataUnavailableWarning("montecarlo", "current price").Message)
	}

	daily := types.DailyReturnStats{
		Mean:   stats.Mean(eval.candidate.DailyReturns),
		StdDev: stats.StdDev(eval.candidate.DailyReturns),
		Count:  len(eval.candidate.DailyReturns),
	}
	stopPrice := price * (1 + eval.stop.StopDistancePct/100)
	targetPrice := price * (1 + eval.candidate.Sample.AvgWin/100)

	est := o.simulator.Simulate(price, stopPrice, targetPrice, daily)
	eval.sim = &est
	if est.RiskLabel == montecarlo.RiskExtreme {
		eval = eval.warn("simulated stop-out risk is extreme")
	}
	return eval
}

// volProxy picks the instrument volatility input for sizing: ATR percent
// when supplied, else the dispersion of the daily-return history, else a
// proxy derived from the pattern's win/loss averages.
func (o *Orchestrator) volProxy(c types.Candidate) float64 {
	if c.ATRPct > 0 {
		return c.ATRPct
	}
	if len(c.DailyReturns) >= 2 {
		return stats.StdDev(c.DailyReturns)
	}
	if c.Sample.AvgWin > 0 || c.Sample.AvgLoss > 0 {
		return (c.Sample.AvgWin + c.Sample.AvgLoss) / 2
	}
	return 0
}

// reasonOf extracts the human-readable message from a ScreenError chain,
// falling back to the raw error text.
func reasonOf(err error) string {
	var se *screrrors.ScreenError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
