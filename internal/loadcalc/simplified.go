package loadcalc

import (
	"github.com/jonathan/permit-engine/internal/types"
)

// Rule-of-thumb constants. Florida practice intentionally permits slight
// oversizing, hence the asymmetric acceptable band.
const (
	baseBTUPerSqFt = 18.0

	minTonnageFactor = 0.90
	maxTonnageFactor = 1.15

	ceilingSurchargePerFt = 0.02
	standardCeilingFt     = 8.0
)

// climateMultipliers scale the base rate by design region
var climateMultipliers = map[climateZone]float64{
	zoneNorth:   0.95,
	zoneCentral: 1.00,
	zoneSouth:   1.08,
}

// SimplifiedCalculator estimates cooling load from square footage and a small
// set of adjustment factors. Fast and total: every input produces a result,
// with confidence scored from how much of the optional detail was supplied.
type SimplifiedCalculator struct{}

// Variant identifies this calculator
func (c *SimplifiedCalculator) Variant() types.CalculatorVariant {
	return types.CalculatorSimplified
}

// Calculate runs the rule-of-thumb estimate
func (c *SimplifiedCalculator) Calculate(input *types.BuildingInput) (*types.LoadCalculationResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	zone := detectClimateZone(input.City, input.County)
	climateMult := climateMultipliers[zone]
	insulationMult := insulationMultiplier(input.YearBuilt)
	ceilingMult := ceilingMultiplier(input.CeilingHeightFt)
	windowMult := windowMultiplier(input.WindowQuality, input.YearBuilt)

	baseBTU := baseBTUPerSqFt * input.SquareFeet
	totalBTU := baseBTU * climateMult * insulationMult * ceilingMult * windowMult

	recommended := roundToHalfTon(totalBTU / btuPerTon)
	if recommended < 1.0 {
		recommended = 1.0
	}
	minTons := recommended * minTonnageFactor
	maxTons := recommended * maxTonnageFactor

	result := &types.LoadCalculationResult{
		RecommendedTonnage: recommended,
		MinTonnage:         minTons,
		MaxTonnage:         maxTons,
		TotalBTULoad:       totalBTU,
		EquipmentMatch:     classifyMatch(input.EquipmentTonnage, recommended, minTons, maxTons),
		Confidence:         c.scoreConfidence(input),
		Breakdown: map[string]float64{
			"base_btu":              baseBTU,
			"climate_multiplier":    climateMult,
			"insulation_multiplier": insulationMult,
			"ceiling_multiplier":    ceilingMult,
			"window_multiplier":     windowMult,
			"total_btu":             totalBTU,
		},
		Warnings:        []string{},
		Recommendations: []string{},
	}

	matchCommentary(result, input.EquipmentTonnage)
	advise(result, input)

	return result, nil
}

// insulationMultiplier keys the envelope quality to construction decade
func insulationMultiplier(yearBuilt int) float64 {
	switch {
	case yearBuilt == 0:
		return 1.10 // unknown vintage, assume mid-pack
	case yearBuilt < 1980:
		return 1.25
	case yearBuilt < 1990:
		return 1.15
	case yearBuilt < 2000:
		return 1.05
	case yearBuilt < 2010:
		return 1.00
	default:
		return 0.92
	}
}

// ceilingMultiplier adds 2% load per foot of ceiling above eight feet
func ceilingMultiplier(heightFt float64) float64 {
	if heightFt <= standardCeilingFt {
		return 1.0
	}
	return 1.0 + ceilingSurchargePerFt*(heightFt-standardCeilingFt)
}

// windowMultiplier uses the stated glazing quality, or estimates it from the
// construction year when unstated
func windowMultiplier(quality types.WindowQuality, yearBuilt int) float64 {
	switch quality {
	case types.WindowSingle:
		return 1.10
	case types.WindowDouble:
		return 1.00
	case types.WindowLowE:
		return 0.92
	}
	switch {
	case yearBuilt == 0:
		return 1.05
	case yearBuilt < 1990:
		return 1.10
	case yearBuilt < 2010:
		return 1.00
	default:
		return 0.92
	}
}

// scoreConfidence counts the optional inputs supplied, then downgrades for
// buildings old or large enough that a rule of thumb is suspect
func (c *SimplifiedCalculator) scoreConfidence(input *types.BuildingInput) types.ConfidenceLevel {
	supplied := 0
	if input.YearBuilt > 0 {
		supplied++
	}
	if input.CeilingHeightFt > 0 {
		supplied++
	}
	if input.WindowQuality != "" {
		supplied++
	}
	if input.City != "" || input.County != "" {
		supplied++
	}

	level := types.ConfidenceLow
	switch {
	case supplied >= 3:
		level = types.ConfidenceHigh
	case supplied >= 1:
		level = types.ConfidenceMedium
	}

	if (input.YearBuilt > 0 && input.YearBuilt < 1960) || input.SquareFeet > 4000 {
		level = downgrade(level)
	}
	return level
}

func downgrade(level types.ConfidenceLevel) types.ConfidenceLevel {
	switch level {
	case types.ConfidenceHigh:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// advise emits the advisory warnings and recommendations shared with the
// detailed calculator's commentary
func advise(result *types.LoadCalculationResult, input *types.BuildingInput) {
	if input.YearBuilt > 0 && input.YearBuilt < 1980 {
		result.Warnings = append(result.Warnings,
			"Pre-1980 construction typically has poor insulation; actual load may run higher than estimated")
		result.Recommendations = append(result.Recommendations,
			"Upgrade attic insulation to at least R-30 before finalizing equipment size")
	}
	if input.SquareFeet > 4000 {
		result.Recommendations = append(result.Recommendations,
			"Homes above 4,000 sq ft should be evaluated for zoned or multi-system designs")
	}
	if input.DuctsUncondition {
		result.Recommendations = append(result.Recommendations,
			"Seal and insulate ductwork in unconditioned space to reduce distribution losses")
	}
	if input.WindowQuality == types.WindowSingle {
		result.Recommendations = append(result.Recommendations,
			"Replacing single-pane windows with low-E glazing reduces cooling load significantly")
	}
}
