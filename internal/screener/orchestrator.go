// Package screener sequences the screening pipeline per candidate:
// statistical validation, stop sizing, volatility-normalized position
// sizing, cost evaluation, hard limits, correlation deduplication and the
// final ENTER/DEFER/REJECT decision. Early stages run on a worker pool; the
// rank-dependent stages (sector cap, dedup) run sequentially over candidates
// pre-sorted by score descending — that ordering is a contract, not an
// implementation detail.
package screener

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tlindeberg/signalscreen/internal/config"
	"github.com/tlindeberg/signalscreen/internal/costs"
	"github.com/tlindeberg/signalscreen/internal/dedup"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/internal/limits"
	"github.com/tlindeberg/signalscreen/internal/monitoring"
	"github.com/tlindeberg/signalscreen/internal/montecarlo"
	"github.com/tlindeberg/signalscreen/internal/refdata"
	"github.com/tlindeberg/signalscreen/internal/regime"
	"github.com/tlindeberg/signalscreen/internal/sizing"
	"github.com/tlindeberg/signalscreen/internal/stops"
	"github.com/tlindeberg/signalscreen/internal/validation"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

// enterQualityScore is the composite-score bar that substitutes for
// statistical significance on the ENTER path.
const enterQualityScore = 70.0

// Orchestrator runs screening passes. Construction fails on a malformed
// configuration; nothing after construction can abort a run.
type Orchestrator struct {
	cfg       *config.Config
	tables    refdata.Tables
	validator *validation.Validator
	stops     *stops.Optimizer
	sizer     *sizing.Sizer
	simulator *montecarlo.Simulator
	detector  *regime.Detector
	costGuard *costs.Guard
	dedup     *dedup.Deduplicator
	log       zerolog.Logger
}

// New creates an orchestrator. The configuration is validated here; an
// invalid configuration is the engine's only fatal error.
func New(cfg *config.Config, tables refdata.Tables, log zerolog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, screrrors.NewConfigError("screener", "configuration is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tables == nil {
		return nil, screrrors.NewConfigError("screener", "reference tables are nil")
	}

	return &Orchestrator{
		cfg:       cfg,
		tables:    tables,
		validator: validation.NewValidator(cfg.Validation, log),
		stops:     stops.NewOptimizer(cfg.Stops, log),
		sizer:     sizing.NewSizer(cfg.Sizing, cfg.AccountValue, log),
		simulator: montecarlo.NewSimulator(cfg.MonteCarlo, log),
		detector:  regime.NewDetector(cfg.Regime, log),
		costGuard: costs.NewGuard(cfg.Costs, cfg.HomeCurrency, log),
		dedup:     dedup.NewDeduplicator(cfg.Dedup, log),
		log:       log.With().Str("component", "screener").Logger(),
	}, nil
}

// Screen runs one full screening pass and returns one Decision per input
// candidate; rejection is always explicit, never signaled by omission. A
// canceled context leaves unprocessed candidates DEFERRED.
func (o *Orchestrator) Screen(ctx context.Context, candidates []types.Candidate) *types.ScreeningRun {
	runID := uuid.NewString()
	started := time.Now()
	runLog := o.log.With().Str("run_id", runID).Logger()
	runLog.Info().Int("candidates", len(candidates)).Msg("screening run started")

	enforcer := limits.NewEnforcer(o.cfg.Stops, o.cfg.Limits, runLog)

	evals := make([]candidateEval, len(candidates))
	for i, c := range candidates {
		evals[i] = candidateEval{
			candidate: c,
			info:      o.tables.Lookup(c.Symbol),
			state:     types.StateReceived,
		}
	}

	// Phase 1: regime-independent stages, parallel across candidates.
	pool := newWorkerPool(o.cfg.Workers, o.stageValidateAndStop(enforcer))
	evals = pool.run(ctx, evals)

	// The regime state is computed once from the full cross-sectional mix
	// and is read-only for the rest of the run.
	regimeState := o.detector.Detect(classCounts(evals))

	// Phase 2: regime-aware stages, still independent per candidate.
	pool = newWorkerPool(o.cfg.Workers, o.stageSizeAndCost(regimeState))
	evals = pool.run(ctx, evals)

	// Phase 3: rank-dependent stages, sequential best-first.
	sort.SliceStable(evals, func(i, j int) bool {
		if evals[i].score() != evals[j].score() {
			return evals[i].score() > evals[j].score()
		}
		return evals[i].candidate.Symbol < evals[j].candidate.Symbol
	})

	decisions := o.decide(evals, enforcer, regimeState)

	run := &types.ScreeningRun{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Regime:     regimeState,
		Decisions:  decisions,
	}
	for _, d := range decisions {
		if d.Outcome == types.OutcomeReject {
			run.Audit = append(run.Audit, d)
		}
		monitoring.RecordDecision(string(d.Outcome))
	}
	monitoring.RecordRun(len(candidates), run.FinishedAt.Sub(started), regimeState.StressIndex)

	runLog.Info().
		Int("decisions", len(decisions)).
		Int("rejected", len(run.Audit)).
		Dur("elapsed", run.FinishedAt.Sub(started)).
		Msg("screening run finished")
	return run
}

// classCounts aggregates the traffic-light classification of every
// candidate in the run. Candidates with insufficient samples classify RED.
func classCounts(evals []candidateEval) map[types.SignalClass]int {
	counts := make(map[types.SignalClass]int)
	for _, e := range evals {
		if e.edge == nil {
			counts[types.ClassRed]++
			continue
		}
		counts[e.edge.Class()]++
	}
	return counts
}

// decide runs the sector cap over the ranked evaluations, deduplicates the
// survivors and materializes the terminal Decisions in rank order.
// Precondition: evals are sorted by score descending.
func (o *Orchestrator) decide(evals []candidateEval, enforcer *limits.Enforcer, regimeState types.RegimeState) []types.Decision {
	type pending struct {
		eval      candidateEval
		outcome   types.Outcome
		reason    string
		enterPath bool
	}
	pendings := make([]pending, len(evals))

	for i, eval := range evals {
		p := pending{eval: eval}
		switch {
		case eval.rejected:
			p.outcome = types.OutcomeReject
			p.reason = eval.reason

		case eval.edge == nil:
			p.outcome = types.OutcomeDefer
			p.reason = "evaluation canceled before completion"

		case eval.sizing == nil || eval.sizing.FinalPct == 0:
			p.outcome = types.OutcomeDefer
			p.reason = fmt.Sprintf("no allocation for tier %s in %s regime", eval.edge.Tier(), regimeState.Label)

		case eval.costs == nil:
			p.outcome = types.OutcomeDefer
			p.reason = "cost evaluation incomplete"

		case eval.costs.NetEdgePct <= 0:
			p.outcome = types.OutcomeReject
			p.reason = fmt.Sprintf("execution costs %.2f%% consume the %.2f%% gross edge",
				eval.costs.TotalCostPct, eval.costs.GrossEdgePct)

		case eval.costs.RiskLevel == types.CostRiskHigh || eval.costs.RiskLevel == types.CostRiskExtreme:
			p.outcome = types.OutcomeDefer
			p.reason = fmt.Sprintf("execution risk %s", eval.costs.RiskLevel)

		case !eval.edge.Significant && eval.edge.QualityScore < enterQualityScore:
			p.outcome = types.OutcomeDefer
			p.reason = fmt.Sprintf("quality score %.1f below entry bar and edge not significant", eval.edge.QualityScore)

		default:
			// ENTER path: both hard limits must still pass.
			if err := enforcer.AdmitSector(eval.info.Sector, eval.score()); err != nil {
				p.outcome = types.OutcomeReject
				p.reason = reasonOf(err)
			} else {
				p.eval.state = types.StateLimitsChecked
				p.outcome = types.OutcomeEnter
				p.enterPath = true
			}
		}
		pendings[i] = p
	}

	// Correlation deduplication over everything still standing.
	var members []dedup.Member
	memberIdx := make(map[string]int)
	for i, p := range pendings {
		if p.outcome == types.OutcomeReject {
			continue
		}
		members = append(members, dedup.Member{
			Symbol:  p.eval.candidate.Symbol,
			Score:   p.eval.score(),
			Returns: p.eval.candidate.TrailingReturns,
		})
		memberIdx[p.eval.candidate.Symbol] = i
	}
	result := o.dedup.Deduplicate(members)
	for _, r := range result.Redundant {
		i := memberIdx[r.Symbol]
		pendings[i].outcome = types.OutcomeReject
		pendings[i].reason = fmt.Sprintf("redundant: correlated with kept instrument %s", r.KeptSymbol)
		pendings[i].enterPath = false
	}
	for _, m := range result.Kept {
		i := memberIdx[m.Symbol]
		pendings[i].eval.state = types.StateDeduplicated
	}

	decisions := make([]types.Decision, len(pendings))
	for i, p := range pendings {
		state := p.eval.state
		warnings := p.eval.warnings
		if regimeState.HaltRecommended {
			warnings = append(warnings, "portfolio-wide halt recommended: market stress index at crisis level")
		}
		if p.outcome != types.OutcomeReject {
			state = types.StateDecided
		}

		decisions[i] = types.Decision{
			Symbol:     p.eval.candidate.Symbol,
			Pattern:    p.eval.candidate.Sample.Pattern,
			State:      state,
			Outcome:    p.outcome,
			Reason:     p.reason,
			Warnings:   warnings,
			Score:      p.eval.score(),
			Edge:       p.eval.edge,
			Stop:       p.eval.stop,
			Sizing:     p.eval.sizing,
			Costs:      p.eval.costs,
			Simulation: p.eval.sim,
			DecidedAt:  time.Now(),
		}
	}
	return decisions
}
