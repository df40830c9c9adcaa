package types

import "time"

// SignalTier buckets a validated signal by strength. Each tier maps to a
// base allocation percentage in the sizing configuration.
type SignalTier string

const (
	TierStrong SignalTier = "STRONG"
	TierMedium SignalTier = "MEDIUM"
	TierWeak   SignalTier = "WEAK"
	TierNone   SignalTier = "NONE"
)

// SignalClass is the cross-sectional traffic-light classification used by
// the regime detector. GREEN and YELLOW count as actionable, RED does not.
type SignalClass string

const (
	ClassGreen  SignalClass = "GREEN"
	ClassYellow SignalClass = "YELLOW"
	ClassRed    SignalClass = "RED"
)

// PatternSample is one detected setup for one instrument, produced by an
// external pattern detector. Forward returns and the win/loss averages are
// percentages (8.0 means +8%). AvgLoss is stored as a positive magnitude.
// The engine never mutates a sample.
type PatternSample struct {
	Symbol      string    `json:"symbol"`
	Pattern     string    `json:"pattern"`
	Returns     []float64 `json:"returns"`
	AvgWin      float64   `json:"avg_win"`
	AvgLoss     float64   `json:"avg_loss"`
	Occurrences int       `json:"occurrences"`
	Prices      []float64 `json:"prices,omitempty"`
}

// Losses returns the negative entries of the forward-return sample.
func (s PatternSample) Losses() []float64 {
	losses := make([]float64, 0, len(s.Returns))
	for _, r := range s.Returns {
		if r < 0 {
			losses = append(losses, r)
		}
	}
	return losses
}

// Wins returns the number of strictly positive forward returns.
func (s PatternSample) Wins() int {
	wins := 0
	for _, r := range s.Returns {
		if r > 0 {
			wins++
		}
	}
	return wins
}

// Candidate is one instrument entering a screening run: the detected pattern
// sample plus the per-instrument market inputs the downstream stages need.
// TrailingReturns feed the correlation deduplicator, DailyReturns the
// Monte Carlo simulator. AvgDailyVolume is in account currency and may be
// zero when volume data is unavailable.
type Candidate struct {
	Symbol          string        `json:"symbol"`
	Sample          PatternSample `json:"sample"`
	Price           float64       `json:"price"`
	ATRPct          float64       `json:"atr_pct"`
	TrailingReturns []float64     `json:"trailing_returns,omitempty"`
	DailyReturns    []float64     `json:"daily_returns,omitempty"`
	AvgDailyVolume  float64       `json:"avg_daily_volume"`
	FXZScore        float64       `json:"fx_z_score"`
}

// ValidatedEdge is the Statistical Validator's output for one sample.
// Created once per sample per run and never mutated.
type ValidatedEdge struct {
	AdjustedWinRate  float64 `json:"adjusted_win_rate"`
	Edge             float64 `json:"edge"`
	RawEV            float64 `json:"raw_ev"`
	BootstrapEV      float64 `json:"bootstrap_ev"`
	BootstrapStdDev  float64 `json:"bootstrap_std_dev"`
	EVLow            float64 `json:"ev_low"`
	EVHigh           float64 `json:"ev_high"`
	PassRate         float64 `json:"pass_rate"`
	PValue           float64 `json:"p_value"`
	Significant      bool    `json:"significant"`
	EfficiencyRatio  float64 `json:"efficiency_ratio"`
	QualityScore     float64 `json:"quality_score"`
	SufficientSample bool    `json:"sufficient_sample"`
}

// Tier buckets the validated edge into a position-sizing tier.
func (e ValidatedEdge) Tier() SignalTier {
	switch {
	case !e.SufficientSample || e.QualityScore <= 0:
		return TierNone
	case e.QualityScore >= 70 && e.Significant:
		return TierStrong
	case e.QualityScore >= 40:
		return TierMedium
	case e.QualityScore >= 20:
		return TierWeak
	default:
		return TierNone
	}
}

// Class maps the validated edge onto the regime detector's traffic light.
func (e ValidatedEdge) Class() SignalClass {
	switch {
	case e.SufficientSample && e.QualityScore >= 70:
		return ClassGreen
	case e.SufficientSample && e.QualityScore >= 40:
		return ClassYellow
	default:
		return ClassRed
	}
}

// StopPlan is the adverse-excursion stop for one candidate.
// StopDistancePct is negative or zero; RRR is avg win over stop magnitude.
type StopPlan struct {
	StopDistancePct float64 `json:"stop_distance_pct"`
	SafetyFactor    float64 `json:"safety_factor"`
	RRR             float64 `json:"rrr"`
	FallbackUsed    bool    `json:"fallback_used"`
}

// Magnitude returns the stop distance as a positive percentage.
func (p StopPlan) Magnitude() float64 {
	if p.StopDistancePct < 0 {
		return -p.StopDistancePct
	}
	return p.StopDistancePct
}

// PositionSizing carries the sizing chain for one candidate.
// FinalPct = BasePct * VolFactor * RegimeMultiplier, floored or zeroed.
type PositionSizing struct {
	Tier             SignalTier `json:"tier"`
	BasePct          float64    `json:"base_pct"`
	VolFactor        float64    `json:"vol_factor"`
	RegimeMultiplier float64    `json:"regime_multiplier"`
	FinalPct         float64    `json:"final_pct"`
	FinalAmount      float64    `json:"final_amount"`
	FloorApplied     bool       `json:"floor_applied"`
}

// StopOutEstimate is the Monte Carlo simulator's advisory output.
type StopOutEstimate struct {
	StopOutProbability float64 `json:"stop_out_probability"`
	MeanReturn         float64 `json:"mean_return"`
	P5Return           float64 `json:"p5_return"`
	P95Return          float64 `json:"p95_return"`
	RiskLabel          string  `json:"risk_label"`
}

// CostBreakdown nets execution costs against the gross edge.
// All percentages are of position value. The identity
// NetEdgePct = GrossEdgePct - TotalCostPct holds exactly.
type CostBreakdown struct {
	FeeAmount      float64  `json:"fee_amount"`
	FeePct         float64  `json:"fee_pct"`
	SpreadPct      float64  `json:"spread_pct"`
	SlippagePct    float64  `json:"slippage_pct"`
	FXPct          float64  `json:"fx_pct"`
	HoldingCostPct float64  `json:"holding_cost_pct"`
	TotalCostPct   float64  `json:"total_cost_pct"`
	GrossEdgePct   float64  `json:"gross_edge_pct"`
	NetEdgePct     float64  `json:"net_edge_pct"`
	FXExtreme      bool     `json:"fx_extreme"`
	RiskLevel      CostRisk `json:"risk_level"`
	Warnings       []string `json:"warnings,omitempty"`
}

// CostRisk classifies execution risk for the orchestrator's ENTER/DEFER call.
type CostRisk string

const (
	CostRiskLow     CostRisk = "LOW"
	CostRiskMedium  CostRisk = "MEDIUM"
	CostRiskHigh    CostRisk = "HIGH"
	CostRiskExtreme CostRisk = "EXTREME"
)

// RegimeLabel is one of five ordered market-health tiers.
type RegimeLabel string

const (
	RegimeHealthy  RegimeLabel = "HEALTHY"
	RegimeNormal   RegimeLabel = "NORMAL"
	RegimeCautious RegimeLabel = "CAUTIOUS"
	RegimeStressed RegimeLabel = "STRESSED"
	RegimeCrisis   RegimeLabel = "CRISIS"
)

// RegimeState is computed once per screening run from the cross-sectional
// classification counts and shared read-only by every candidate in the run.
type RegimeState struct {
	Counts             map[SignalClass]int `json:"counts"`
	StressIndex        float64             `json:"stress_index"`
	Label              RegimeLabel         `json:"label"`
	SizeMultiplier     float64             `json:"size_multiplier"`
	ImpliedCorrelation float64             `json:"implied_correlation"`
	HaltRecommended    bool                `json:"halt_recommended"`
}

// CandidateState tracks a candidate through the screening state machine.
type CandidateState string

const (
	StateReceived      CandidateState = "RECEIVED"
	StateValidated     CandidateState = "VALIDATED"
	StateStopSized     CandidateState = "STOP_SIZED"
	StatePositionSized CandidateState = "POSITION_SIZED"
	StateCostEvaluated CandidateState = "COST_EVALUATED"
	StateLimitsChecked CandidateState = "LIMITS_CHECKED"
	StateDeduplicated  CandidateState = "DEDUPLICATED"
	StateDecided       CandidateState = "DECIDED"
)

// Outcome is the tri-state terminal result for one candidate.
type Outcome string

const (
	OutcomeEnter  Outcome = "ENTER"
	OutcomeDefer  Outcome = "DEFER"
	OutcomeReject Outcome = "REJECT"
)

// Decision is the terminal per-candidate object. Non-ENTER outcomes always
// carry a reason; rejection is never signaled by omission.
type Decision struct {
	Symbol     string           `json:"symbol"`
	Pattern    string           `json:"pattern"`
	State      CandidateState   `json:"state"`
	Outcome    Outcome          `json:"outcome"`
	Reason     string           `json:"reason,omitempty"`
	Warnings   []string         `json:"warnings,omitempty"`
	Score      float64          `json:"score"`
	Edge       *ValidatedEdge   `json:"edge,omitempty"`
	Stop       *StopPlan        `json:"stop,omitempty"`
	Sizing     *PositionSizing  `json:"sizing,omitempty"`
	Costs      *CostBreakdown   `json:"costs,omitempty"`
	Simulation *StopOutEstimate `json:"simulation,omitempty"`
	DecidedAt  time.Time        `json:"decided_at"`
}

// ScreeningRun is the full output of one orchestrator pass: one decision per
// input candidate, the shared regime state, and the audit trail of
// rejected or deduplicated candidates with reasons.
type ScreeningRun struct {
	RunID      string      `json:"run_id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Regime     RegimeState `json:"regime"`
	Decisions  []Decision  `json:"decisions"`
	Audit      []Decision  `json:"audit"`
}
