// Package config defines the single configuration object handed to the
// screening orchestrator at construction time. Thresholds and tier tables
// are hand-tuned constants carried over from production use; they are
// configuration, not derived values.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
)

var validate = validator.New()

// Config is the full engine configuration. A malformed config is the only
// fatal error in the engine and is reported before any candidate is touched.
type Config struct {
	AccountValue float64 `yaml:"account_value" default:"100000" validate:"gt=0"`
	HomeCurrency string  `yaml:"home_currency" default:"NOK" validate:"len=3"`
	Workers      int     `yaml:"workers" default:"4" validate:"gte=1"`

	Validation ValidationConfig `yaml:"validation"`
	Stops      StopConfig       `yaml:"stops"`
	Sizing     SizingConfig     `yaml:"sizing"`
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo"`
	Regime     RegimeConfig     `yaml:"regime"`
	Costs      CostConfig       `yaml:"costs"`
	Limits     LimitConfig      `yaml:"limits"`
	Dedup      DedupConfig      `yaml:"dedup"`
}

// ValidationConfig drives the statistical validator.
type ValidationConfig struct {
	PriorWinRate       float64 `yaml:"prior_win_rate" default:"0.60" validate:"gt=0,lt=1"`
	PriorPseudoCount   float64 `yaml:"prior_pseudo_count" default:"10" validate:"gt=0"`
	BootstrapIters     int     `yaml:"bootstrap_iters" default:"1000" validate:"gt=0"`
	BootstrapSeed      int64   `yaml:"bootstrap_seed" default:"42"`
	MinSampleSize      int     `yaml:"min_sample_size" default:"5" validate:"gte=1"`
	EfficiencyLookback int     `yaml:"efficiency_lookback" default:"20" validate:"gte=2"`
}

// StopConfig drives the adverse-excursion stop optimizer. Percentages are
// positive magnitudes. AbsoluteCapPct is a reject threshold, never a clamp.
type StopConfig struct {
	SafetyFactor           float64 `yaml:"safety_factor" default:"1.5" validate:"gt=0"`
	MinStopPct             float64 `yaml:"min_stop_pct" default:"1.5" validate:"gt=0"`
	MaxStopPct             float64 `yaml:"max_stop_pct" default:"6.0" validate:"gt=0"`
	AbsoluteCapPct         float64 `yaml:"absolute_cap_pct" default:"6.0" validate:"gt=0"`
	LossPercentile         float64 `yaml:"loss_percentile" default:"75" validate:"gte=0,lte=100"`
	MinLossesForPercentile int     `yaml:"min_losses_for_percentile" default:"8" validate:"gte=1"`
}

// SizingConfig maps signal tiers to base allocations and normalizes them by
// instrument volatility.
type SizingConfig struct {
	StrongPct      float64 `yaml:"strong_pct" default:"4.0" validate:"gte=0"`
	MediumPct      float64 `yaml:"medium_pct" default:"2.0" validate:"gte=0"`
	WeakPct        float64 `yaml:"weak_pct" default:"0.5" validate:"gte=0"`
	TargetVolPct   float64 `yaml:"target_vol_pct" default:"2.0" validate:"gt=0"`
	VolFloor       float64 `yaml:"vol_floor" default:"0.5" validate:"gt=0"`
	VolCeiling     float64 `yaml:"vol_ceiling" default:"2.0" validate:"gt=0"`
	MinPositionPct float64 `yaml:"min_position_pct" default:"0.5" validate:"gte=0"`
}

// MonteCarloConfig drives the advisory stop-out simulator.
type MonteCarloConfig struct {
	Paths       int   `yaml:"paths" default:"500" validate:"gt=0"`
	HorizonDays int   `yaml:"horizon_days" default:"20" validate:"gt=0"`
	Seed        int64 `yaml:"seed" default:"1337"`
}

// RegimeConfig holds the actionable-share breakpoints for the five market
// health tiers and the position multiplier each tier maps to.
type RegimeConfig struct {
	HealthyMinPct  float64 `yaml:"healthy_min_pct" default:"70" validate:"gte=0,lte=100"`
	NormalMinPct   float64 `yaml:"normal_min_pct" default:"50" validate:"gte=0,lte=100"`
	CautiousMinPct float64 `yaml:"cautious_min_pct" default:"30" validate:"gte=0,lte=100"`
	StressedMinPct float64 `yaml:"stressed_min_pct" default:"10" validate:"gte=0,lte=100"`

	HealthyMultiplier  float64 `yaml:"healthy_multiplier" default:"1.0" validate:"gt=0,lte=1"`
	NormalMultiplier   float64 `yaml:"normal_multiplier" default:"0.8" validate:"gt=0,lte=1"`
	CautiousMultiplier float64 `yaml:"cautious_multiplier" default:"0.6" validate:"gt=0,lte=1"`
	StressedMultiplier float64 `yaml:"stressed_multiplier" default:"0.4" validate:"gt=0,lte=1"`
	CrisisMultiplier   float64 `yaml:"crisis_multiplier" default:"0.2" validate:"gt=0,lte=1"`

	HaltStressIndex float64 `yaml:"halt_stress_index" default:"90" validate:"gte=0,lte=100"`
}

// CostConfig holds the fee tier, spread table, slippage staging and
// account-type costs for the execution cost guard. The minimum fee and rate
// follow the Nordic discount-broker tier the screener was tuned against.
type CostConfig struct {
	FeeRatePct float64 `yaml:"fee_rate_pct" default:"0.15" validate:"gte=0"`
	FeeMinimum float64 `yaml:"fee_minimum" default:"39" validate:"gte=0"`

	SpreadLargeCapPct  float64 `yaml:"spread_large_cap_pct" default:"0.05" validate:"gte=0"`
	SpreadSmallCapPct  float64 `yaml:"spread_small_cap_pct" default:"0.15" validate:"gte=0"`
	SpreadLeveragedPct float64 `yaml:"spread_leveraged_pct" default:"0.25" validate:"gte=0"`

	SlippageMinimalPct  float64 `yaml:"slippage_minimal_pct" default:"0.02" validate:"gte=0"`
	SlippageModeratePct float64 `yaml:"slippage_moderate_pct" default:"0.10" validate:"gte=0"`
	SlippageHighPct     float64 `yaml:"slippage_high_pct" default:"0.25" validate:"gte=0"`
	SlippageSeverePct   float64 `yaml:"slippage_severe_pct" default:"0.60" validate:"gte=0"`

	FXRoundTripPct  float64 `yaml:"fx_round_trip_pct" default:"0.5" validate:"gte=0"`
	FXZScoreExtreme float64 `yaml:"fx_z_score_extreme" default:"2.0" validate:"gt=0"`

	LeveragedDecayPerDayPct float64 `yaml:"leveraged_decay_per_day_pct" default:"0.05" validate:"gte=0"`
	HoldingDays             int     `yaml:"holding_days" default:"10" validate:"gt=0"`

	TaxAdvantaged bool `yaml:"tax_advantaged"`
}

// LimitConfig drives the sector concentration cap. The absolute stop cap
// lives in StopConfig.AbsoluteCapPct since it is derived from the same
// distribution the stop optimizer reads.
type LimitConfig struct {
	MaxPerSector  int     `yaml:"max_per_sector" default:"3" validate:"gte=1"`
	SectorPenalty float64 `yaml:"sector_penalty" default:"0.10" validate:"gte=0"`
}

// DedupConfig drives the correlation cluster deduplicator.
type DedupConfig struct {
	Lookback  int     `yaml:"lookback" default:"90" validate:"gte=2"`
	Threshold float64 `yaml:"threshold" default:"0.65" validate:"gt=0,lt=1"`
}

// Default returns a Config populated with the default tier tables and
// thresholds.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// The default tags are compile-time constants; this cannot fail on
		// a well-formed struct.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML configuration file, applies defaults for absent fields
// and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, screrrors.WrapError(err, screrrors.ErrorCategoryConfig, "config", "read config file")
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, screrrors.WrapError(err, screrrors.ErrorCategoryConfig, "config", "parse config file")
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, screrrors.WrapError(err, screrrors.ErrorCategoryConfig, "config", "apply defaults")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints plus the cross-field rules the tag
// language cannot express. Any error here is fatal for the run.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return screrrors.WrapError(err, screrrors.ErrorCategoryConfig, "config", "invalid configuration")
	}

	if c.Stops.MinStopPct > c.Stops.MaxStopPct {
		return screrrors.NewConfigError("config",
			fmt.Sprintf("min_stop_pct %.2f exceeds max_stop_pct %.2f", c.Stops.MinStopPct, c.Stops.MaxStopPct))
	}
	if c.Sizing.VolFloor > c.Sizing.VolCeiling {
		return screrrors.NewConfigError("config",
			fmt.Sprintf("vol_floor %.2f exceeds vol_ceiling %.2f", c.Sizing.VolFloor, c.Sizing.VolCeiling))
	}
	if !(c.Regime.HealthyMinPct > c.Regime.NormalMinPct &&
		c.Regime.NormalMinPct > c.Regime.CautiousMinPct &&
		c.Regime.CautiousMinPct > c.Regime.StressedMinPct) {
		return screrrors.NewConfigError("config", "regime breakpoints must be strictly descending")
	}
	return nil
}
