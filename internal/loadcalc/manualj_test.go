package loadcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/permit-engine/internal/types"
)

func TestManualJ_TypicalHome(t *testing.T) {
	calc := &ManualJCalculator{}

	// 2,000 sq ft single-story 1990 build in the central zone: a sane
	// result lands strictly between 2.5 and 5 tons
	result, err := calc.Calculate(&types.BuildingInput{
		SquareFeet: 2000,
		YearBuilt:  1990,
		City:       "Tampa",
		County:     "Hillsborough",
	})
	require.NoError(t, err)

	assert.Greater(t, result.RecommendedTonnage, 2.5)
	assert.Less(t, result.RecommendedTonnage, 5.0)
	assert.Equal(t, types.ConfidenceHigh, result.Confidence)

	// Sensible and latent components sum to the total cooling load
	assert.InDelta(t, result.TotalBTULoad, result.SensibleBTU+result.LatentBTU, 0.01)
	assert.Greater(t, result.SensibleBTU, result.LatentBTU)
	assert.Greater(t, result.HeatingBTU, 0.0)
}

func TestManualJ_Deterministic(t *testing.T) {
	calc := &ManualJCalculator{}
	input := &types.BuildingInput{
		SquareFeet:      1800,
		YearBuilt:       2005,
		Stories:         2,
		Bedrooms:        3,
		CeilingHeightFt: 9,
		WindowQuality:   types.WindowDouble,
		City:            "Sarasota",
	}

	first, err := calc.Calculate(input)
	require.NoError(t, err)
	second, err := calc.Calculate(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestManualJ_Breakdown(t *testing.T) {
	calc := &ManualJCalculator{}

	result, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1990})
	require.NoError(t, err)

	for _, key := range []string{
		"wall_gain", "window_gain", "door_gain", "ceiling_gain", "solar_gain",
		"infiltration_sensible", "infiltration_latent",
		"occupant_sensible", "occupant_latent",
		"appliance_sensible", "appliance_latent", "heating_btu",
	} {
		assert.Contains(t, result.Breakdown, key)
		assert.Greater(t, result.Breakdown[key], 0.0, "component %s", key)
	}
}

func TestManualJ_EnvelopeEra(t *testing.T) {
	calc := &ManualJCalculator{}

	// Leakier, less insulated construction carries a strictly larger load
	older, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1970})
	require.NoError(t, err)
	newer, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 2020})
	require.NoError(t, err)
	assert.Greater(t, older.TotalBTULoad, newer.TotalBTULoad)
	assert.Greater(t, older.HeatingBTU, newer.HeatingBTU)

	// Unknown years borrow the 1990s envelope
	unknown, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000})
	require.NoError(t, err)
	nineties, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1995})
	require.NoError(t, err)
	assert.InDelta(t, nineties.TotalBTULoad, unknown.TotalBTULoad, 0.01)
}

func TestManualJ_BlowerDoorOverride(t *testing.T) {
	calc := &ManualJCalculator{}

	// A measured tight result beats the era default
	measured, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1975, ACH50: 4})
	require.NoError(t, err)
	assumed, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1975})
	require.NoError(t, err)
	assert.Less(t, measured.TotalBTULoad, assumed.TotalBTULoad)
}

func TestManualJ_DuctPenalty(t *testing.T) {
	calc := &ManualJCalculator{}

	attic, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 2000, DuctsUncondition: true})
	require.NoError(t, err)
	conditioned, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 2000})
	require.NoError(t, err)

	assert.InDelta(t, 1.15, attic.TotalBTULoad/conditioned.TotalBTULoad, 1e-9)
	assert.InDelta(t, 1.15, attic.HeatingBTU/conditioned.HeatingBTU, 1e-9)
}

func TestManualJ_OccupantEstimate(t *testing.T) {
	calc := &ManualJCalculator{}

	// Bedrooms drive occupancy when stated: 4 bedrooms = 5 occupants
	bedrooms, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2400, Bedrooms: 4})
	require.NoError(t, err)
	assert.InDelta(t, 5*230.0, bedrooms.Breakdown["occupant_sensible"], 0.01)

	// Otherwise one occupant per 600 sq ft: 2400 sq ft = 4 occupants
	area, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2400})
	require.NoError(t, err)
	assert.InDelta(t, 4*230.0, area.Breakdown["occupant_sensible"], 0.01)

	// Small homes floor at two occupants
	small, err := calc.Calculate(&types.BuildingInput{SquareFeet: 700})
	require.NoError(t, err)
	assert.InDelta(t, 2*230.0, small.Breakdown["occupant_sensible"], 0.01)
}

func TestManualJ_EquipmentBand(t *testing.T) {
	calc := &ManualJCalculator{}

	base, err := calc.Calculate(&types.BuildingInput{SquareFeet: 2000, YearBuilt: 1990})
	require.NoError(t, err)
	rec := base.RecommendedTonnage

	within, err := calc.Calculate(&types.BuildingInput{
		SquareFeet: 2000, YearBuilt: 1990, EquipmentTonnage: rec + 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, types.MatchAcceptable, within.EquipmentMatch)

	beyond, err := calc.Calculate(&types.BuildingInput{
		SquareFeet: 2000, YearBuilt: 1990, EquipmentTonnage: rec + 1.0,
	})
	require.NoError(t, err)
	assert.Equal(t, types.MatchOversized, beyond.EquipmentMatch)
}
