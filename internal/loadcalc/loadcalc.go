// Package loadcalc computes heating and cooling loads for a structure and
// grades proposed equipment capacity against them. Two calculators implement
// the same capability: a square-footage rule of thumb and a Manual-J style
// envelope model. Both are pure functions of their input, so identical inputs
// always produce identical results.
package loadcalc

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/permit-engine/internal/types"
)

// Calculator computes a load result for a building
type Calculator interface {
	Calculate(input *types.BuildingInput) (*types.LoadCalculationResult, error)
	Variant() types.CalculatorVariant
}

// ForVariant returns the calculator implementing the requested variant.
// Unrecognized variants resolve to the simplified calculator.
func ForVariant(variant types.CalculatorVariant) Calculator {
	if variant == types.CalculatorManualJ {
		return &ManualJCalculator{}
	}
	return &SimplifiedCalculator{}
}

// btuPerTon converts BTU/hr of load into nominal equipment tons
const btuPerTon = 12000.0

// climateZone buckets Florida into three design regions
type climateZone string

const (
	zoneNorth   climateZone = "north"
	zoneCentral climateZone = "central"
	zoneSouth   climateZone = "south"
)

var northKeywords = []string{
	"jacksonville", "duval", "tallahassee", "leon", "gainesville", "alachua",
	"ocala", "marion", "pensacola", "escambia", "panama city", "nassau", "clay",
}

var southKeywords = []string{
	"miami", "dade", "broward", "palm beach", "monroe", "collier", "lee",
	"naples", "fort myers", "cape coral", "bonita springs", "marco island",
}

// detectClimateZone picks the design region by keyword match on the city and
// county. The serviced region defaults to central Florida.
func detectClimateZone(city, county string) climateZone {
	haystack := strings.ToLower(city + " " + county)
	for _, kw := range southKeywords {
		if strings.Contains(haystack, kw) {
			return zoneSouth
		}
	}
	for _, kw := range northKeywords {
		if strings.Contains(haystack, kw) {
			return zoneNorth
		}
	}
	return zoneCentral
}

// classifyMatch grades equipment capacity against a recommended size and an
// acceptable band. The perfect band is checked first so the grade sequence as
// capacity grows is perfect, acceptable, oversized and never reverses.
func classifyMatch(equipTons, recommended, minTons, maxTons float64) types.EquipmentMatch {
	if equipTons <= 0 {
		return types.MatchUnknown
	}
	if math.Abs(equipTons-recommended) <= 0.3 {
		return types.MatchPerfect
	}
	if equipTons >= minTons && equipTons <= maxTons {
		return types.MatchAcceptable
	}
	if equipTons > maxTons {
		return types.MatchOversized
	}
	return types.MatchUndersized
}

// roundToHalfTon rounds to the nearest half-ton equipment size
func roundToHalfTon(tons float64) float64 {
	return math.Round(tons*2) / 2
}

// sizeUpToHalfTon rounds up to the next available half-ton equipment size
func sizeUpToHalfTon(tons float64) float64 {
	return math.Ceil(tons*2) / 2
}

// matchCommentary appends sizing warnings shared by both calculators
func matchCommentary(result *types.LoadCalculationResult, equipTons float64) {
	switch result.EquipmentMatch {
	case types.MatchOversized:
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Proposed %.1f-ton equipment exceeds the recommended %.1f tons; oversized systems short-cycle and dehumidify poorly",
			equipTons, result.RecommendedTonnage))
	case types.MatchUndersized:
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Proposed %.1f-ton equipment is below the recommended %.1f tons and may not hold setpoint on design days",
			equipTons, result.RecommendedTonnage))
	}
}

// validateInput rejects inputs no calculator can work with
func validateInput(input *types.BuildingInput) error {
	if input == nil {
		return fmt.Errorf("building input is required")
	}
	if input.SquareFeet <= 0 {
		return fmt.Errorf("square footage must be positive, got %.1f", input.SquareFeet)
	}
	return nil
}
