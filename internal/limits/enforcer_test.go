package limits

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tlindeberg/signalscreen/internal/config"
	screrrors "github.com/tlindeberg/signalscreen/internal/errors"
	"github.com/tlindeberg/signalscreen/pkg/types"
)

func testEnforcer() *Enforcer {
	cfg := config.Default()
	return NewEnforcer(cfg.Stops, cfg.Limits, zerolog.Nop())
}

// TestCheckStopCap_RejectsWideStop tests that a 7% stop against the 6% cap
// is rejected with a hard-limit error naming the cap
func TestCheckStopCap_RejectsWideStop(t *testing.T) {
	e := testEnforcer()

	err := e.CheckStopCap(types.StopPlan{StopDistancePct: -7.0})

	assert.Error(t, err)
	assert.Equal(t, screrrors.ErrorCategoryHardLimit, screrrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "stop cap")
	assert.Contains(t, err.Error(), "7.00%")
}

// TestCheckStopCap_AllowsAtCap tests that a stop exactly at the cap passes
func TestCheckStopCap_AllowsAtCap(t *testing.T) {
	e := testEnforcer()

	assert.NoError(t, e.CheckStopCap(types.StopPlan{StopDistancePct: -6.0}))
	assert.NoError(t, e.CheckStopCap(types.StopPlan{StopDistancePct: -1.5}))
}

// TestAdmitSector_CapWithEscalatingBar tests that the first three admissions
// pass automatically and a fourth needs a 10% better score than the sector's
// best
func TestAdmitSector_CapWithEscalatingBar(t *testing.T) {
	e := testEnforcer()

	assert.NoError(t, e.AdmitSector("ENERGY", 80))
	assert.NoError(t, e.AdmitSector("ENERGY", 75))
	assert.NoError(t, e.AdmitSector("ENERGY", 72))
	assert.Equal(t, 3, e.SectorCount("ENERGY"))

	// Bar is 80 * 1.10 = 88.
	err := e.AdmitSector("ENERGY", 85)
	assert.Error(t, err)
	assert.Equal(t, screrrors.ErrorCategoryHardLimit, screrrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "sector cap")
	assert.Equal(t, 3, e.SectorCount("ENERGY"))

	assert.NoError(t, e.AdmitSector("ENERGY", 89))
	assert.Equal(t, 4, e.SectorCount("ENERGY"))
}

// TestAdmitSector_IndependentSectors tests that sector counts do not bleed
// into each other
func TestAdmitSector_IndependentSectors(t *testing.T) {
	e := testEnforcer()

	for i := 0; i < 3; i++ {
		assert.NoError(t, e.AdmitSector("FINANCE", 70))
	}
	assert.NoError(t, e.AdmitSector("SHIPPING", 50))
	assert.Equal(t, 3, e.SectorCount("FINANCE"))
	assert.Equal(t, 1, e.SectorCount("SHIPPING"))
}

// TestAdmitSector_BarTracksAdmittedBest tests that a cleared escalated bar
// raises the next bar
func TestAdmitSector_BarTracksAdmittedBest(t *testing.T) {
	e := testEnforcer()

	assert.NoError(t, e.AdmitSector("TECH", 80))
	assert.NoError(t, e.AdmitSector("TECH", 60))
	assert.NoError(t, e.AdmitSector("TECH", 60))
	assert.NoError(t, e.AdmitSector("TECH", 90)) // clears 88

	// Bar is now 90 * 1.10 = 99.
	assert.Error(t, e.AdmitSector("TECH", 95))
	assert.NoError(t, e.AdmitSector("TECH", 99.5))
}
