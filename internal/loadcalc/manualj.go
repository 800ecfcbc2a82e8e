package loadcalc

import (
	"math"

	"github.com/jonathan/permit-engine/internal/types"
)

// Envelope geometry assumptions. The footprint is modeled as a 1.3:1
// rectangle; window area is taken as a fixed fraction of floor area.
const (
	footprintAspectRatio = 1.3
	windowToFloorRatio   = 0.15
	doorAreaSqFt         = 42.0 // two standard 3'x7' doors
	doorUValue           = 0.50

	solarIntensityBTUSqFt = 60.0 // average glass load across orientations

	infiltrationSensibleCoeff = 1.08
	infiltrationLatentCoeff   = 0.68
	ach50ToNaturalDivisor     = 20.0

	occupantSensibleBTU = 230.0
	occupantLatentBTU   = 200.0
	applianceBTUPerSqFt = 2.0
	applianceLatentBTU  = 800.0

	ductGainFactor = 1.15

	manualJAcceptableBand = 0.6
)

// envelopeProperties holds the construction-era U-values and tightness
type envelopeProperties struct {
	wallU    float64
	ceilingU float64
	ach50    float64
}

// windowProperties holds the glazing U-value and solar heat gain coefficient
type windowProperties struct {
	uValue float64
	shgc   float64
}

// designConditions holds climate-zone design temperature differentials and
// the summer moisture difference in grains
type designConditions struct {
	coolingDeltaT float64
	heatingDeltaT float64
	moistureGr    float64
}

var designByZone = map[climateZone]designConditions{
	zoneNorth:   {coolingDeltaT: 19, heatingDeltaT: 36, moistureGr: 38},
	zoneCentral: {coolingDeltaT: 18, heatingDeltaT: 28, moistureGr: 45},
	zoneSouth:   {coolingDeltaT: 17, heatingDeltaT: 22, moistureGr: 52},
}

// ManualJCalculator computes the cooling and heating load from first
// principles: per-component envelope conduction, window solar gain,
// infiltration, and internal gains, with sensible and latent components
// tracked separately. Physics-based, so confidence is always high.
type ManualJCalculator struct{}

// Variant identifies this calculator
func (c *ManualJCalculator) Variant() types.CalculatorVariant {
	return types.CalculatorManualJ
}

// Calculate runs the envelope model
func (c *ManualJCalculator) Calculate(input *types.BuildingInput) (*types.LoadCalculationResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	zone := detectClimateZone(input.City, input.County)
	design := designByZone[zone]
	env := envelopeForYear(input.YearBuilt)
	win := windowsFor(input.WindowQuality, input.YearBuilt)

	stories := input.Stories
	if stories <= 0 {
		stories = 1
	}
	ceilingFt := input.CeilingHeightFt
	if ceilingFt <= 0 {
		ceilingFt = standardCeilingFt
	}
	ach50 := input.ACH50
	if ach50 <= 0 {
		ach50 = env.ach50
	}

	// Envelope geometry from the rectangular footprint assumption
	footprint := input.SquareFeet / float64(stories)
	width := math.Sqrt(footprint / footprintAspectRatio)
	length := footprintAspectRatio * width
	perimeter := 2 * (length + width)
	grossWallArea := perimeter * ceilingFt * float64(stories)
	windowArea := windowToFloorRatio * input.SquareFeet
	netWallArea := grossWallArea - windowArea - doorAreaSqFt
	if netWallArea < 0 {
		netWallArea = 0
	}
	ceilingArea := footprint

	// Sensible conduction gains, Q = U * A * deltaT per component
	wallGain := env.wallU * netWallArea * design.coolingDeltaT
	windowGain := win.uValue * windowArea * design.coolingDeltaT
	doorGain := doorUValue * doorAreaSqFt * design.coolingDeltaT
	ceilingGain := env.ceilingU * ceilingArea * design.coolingDeltaT
	solarGain := win.shgc * windowArea * solarIntensityBTUSqFt

	// Infiltration from the ACH50-derived natural air change rate
	volume := input.SquareFeet * ceilingFt
	naturalCFM := (ach50 / ach50ToNaturalDivisor) * volume / 60.0
	infiltrationSensible := infiltrationSensibleCoeff * naturalCFM * design.coolingDeltaT
	infiltrationLatent := infiltrationLatentCoeff * naturalCFM * design.moistureGr

	// Internal gains from occupancy and fixed per-area appliance/lighting load
	occupants := estimateOccupants(input)
	occupantSensible := occupantSensibleBTU * occupants
	occupantLatent := occupantLatentBTU * occupants
	applianceSensible := applianceBTUPerSqFt * input.SquareFeet

	sensible := wallGain + windowGain + doorGain + ceilingGain + solarGain +
		infiltrationSensible + occupantSensible + applianceSensible
	latent := infiltrationLatent + occupantLatent + applianceLatentBTU

	// Symmetric heating calculation with the winter design differential;
	// solar and internal gains are not credited against heating load
	heatingEnvelope := env.wallU*netWallArea*design.heatingDeltaT +
		win.uValue*windowArea*design.heatingDeltaT +
		doorUValue*doorAreaSqFt*design.heatingDeltaT +
		env.ceilingU*ceilingArea*design.heatingDeltaT
	heatingInfiltration := infiltrationSensibleCoeff * naturalCFM * design.heatingDeltaT
	heating := heatingEnvelope + heatingInfiltration

	if input.DuctsUncondition {
		sensible *= ductGainFactor
		latent *= ductGainFactor
		heating *= ductGainFactor
	}

	totalCooling := sensible + latent
	recommended := sizeUpToHalfTon(totalCooling / btuPerTon)
	if recommended < 1.0 {
		recommended = 1.0
	}
	minTons := recommended - manualJAcceptableBand
	maxTons := recommended + manualJAcceptableBand

	result := &types.LoadCalculationResult{
		RecommendedTonnage: recommended,
		MinTonnage:         minTons,
		MaxTonnage:         maxTons,
		TotalBTULoad:       totalCooling,
		SensibleBTU:        sensible,
		LatentBTU:          latent,
		HeatingBTU:         heating,
		EquipmentMatch:     classifyMatch(input.EquipmentTonnage, recommended, minTons, maxTons),
		Confidence:         types.ConfidenceHigh,
		Breakdown: map[string]float64{
			"wall_gain":             wallGain,
			"window_gain":           windowGain,
			"door_gain":             doorGain,
			"ceiling_gain":          ceilingGain,
			"solar_gain":            solarGain,
			"infiltration_sensible": infiltrationSensible,
			"infiltration_latent":   infiltrationLatent,
			"occupant_sensible":     occupantSensible,
			"occupant_latent":       occupantLatent,
			"appliance_sensible":    applianceSensible,
			"appliance_latent":      applianceLatentBTU,
			"heating_btu":           heating,
		},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	matchCommentary(result, input.EquipmentTonnage)
	advise(result, input)

	return result, nil
}

// envelopeForYear keys U-values and air tightness to construction era.
// Unknown years are treated as 1990s construction.
func envelopeForYear(yearBuilt int) envelopeProperties {
	switch {
	case yearBuilt == 0:
		return envelopeProperties{wallU: 0.20, ceilingU: 0.05, ach50: 9}
	case yearBuilt < 1980:
		return envelopeProperties{wallU: 0.28, ceilingU: 0.09, ach50: 12}
	case yearBuilt < 1990:
		return envelopeProperties{wallU: 0.24, ceilingU: 0.07, ach50: 10}
	case yearBuilt < 2000:
		return envelopeProperties{wallU: 0.20, ceilingU: 0.05, ach50: 9}
	case yearBuilt < 2010:
		return envelopeProperties{wallU: 0.14, ceilingU: 0.035, ach50: 7}
	default:
		return envelopeProperties{wallU: 0.10, ceilingU: 0.03, ach50: 5}
	}
}

// windowsFor uses the stated glazing quality, estimating from the
// construction year when unstated
func windowsFor(quality types.WindowQuality, yearBuilt int) windowProperties {
	switch quality {
	case types.WindowSingle:
		return windowProperties{uValue: 1.10, shgc: 0.70}
	case types.WindowDouble:
		return windowProperties{uValue: 0.65, shgc: 0.55}
	case types.WindowLowE:
		return windowProperties{uValue: 0.35, shgc: 0.30}
	}
	switch {
	case yearBuilt > 0 && yearBuilt < 1990:
		return windowProperties{uValue: 1.10, shgc: 0.70}
	case yearBuilt >= 2010:
		return windowProperties{uValue: 0.35, shgc: 0.30}
	default:
		return windowProperties{uValue: 0.65, shgc: 0.55}
	}
}

// estimateOccupants derives occupancy from bedroom count when supplied,
// otherwise from floor area at one occupant per 600 sq ft (minimum two)
func estimateOccupants(input *types.BuildingInput) float64 {
	if input.Bedrooms > 0 {
		return float64(input.Bedrooms + 1)
	}
	occ := input.SquareFeet / 600.0
	if occ < 2 {
		occ = 2
	}
	return occ
}
