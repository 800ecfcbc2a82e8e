package types

import "github.com/go-playground/validator/v10"

// CalculatorVariant selects which load-calculation model to run
type CalculatorVariant string

// Calculator variants
const (
	CalculatorSimplified CalculatorVariant = "simplified"
	CalculatorManualJ    CalculatorVariant = "manual-j"
)

// WindowQuality grades the glazing of the structure
type WindowQuality string

// Window quality grades
const (
	WindowSingle WindowQuality = "single"
	WindowDouble WindowQuality = "double"
	WindowLowE   WindowQuality = "low-e"
)

// BuildingInput describes the structure a load calculation is run against.
// SquareFeet is the only required field; every other attribute improves the
// estimate when supplied and falls back to a year-built or area heuristic
// when omitted.
type BuildingInput struct {
	SquareFeet       float64       `json:"square_feet" validate:"required,gt=0,lte=100000"`
	YearBuilt        int           `json:"year_built,omitempty" validate:"omitempty,gte=1850,lte=2100"`
	CeilingHeightFt  float64       `json:"ceiling_height_ft,omitempty" validate:"omitempty,gte=6,lte=30"`
	Bedrooms         int           `json:"bedrooms,omitempty" validate:"gte=0"`
	Stories          int           `json:"stories,omitempty" validate:"gte=0,lte=10"`
	WindowQuality    WindowQuality `json:"window_quality,omitempty"`
	ACH50            float64       `json:"ach50,omitempty" validate:"gte=0"`
	DuctsUncondition bool          `json:"ducts_in_unconditioned_space,omitempty"`
	City             string        `json:"city,omitempty"`
	County           string        `json:"county,omitempty"`
	EquipmentTonnage float64       `json:"equipment_tonnage,omitempty" validate:"gte=0"`
}

// Validate validates the BuildingInput using the validator.
func (b *BuildingInput) Validate() error {
	validate := validator.New()
	return validate.Struct(b)
}

// EquipmentMatch grades proposed equipment capacity against the computed load
type EquipmentMatch string

// Equipment match grades
const (
	MatchPerfect    EquipmentMatch = "perfect"
	MatchAcceptable EquipmentMatch = "acceptable"
	MatchOversized  EquipmentMatch = "oversized"
	MatchUndersized EquipmentMatch = "undersized"
	MatchUnknown    EquipmentMatch = "unknown"
)

// LoadCalculationResult is the shared output shape of both load calculators,
// so callers are implementation-agnostic
type LoadCalculationResult struct {
	RecommendedTonnage float64            `json:"recommended_tonnage"`
	MinTonnage         float64            `json:"min_tonnage"`
	MaxTonnage         float64            `json:"max_tonnage"`
	TotalBTULoad       float64            `json:"total_btu_load"`
	SensibleBTU        float64            `json:"sensible_btu,omitempty"`
	LatentBTU          float64            `json:"latent_btu,omitempty"`
	HeatingBTU         float64            `json:"heating_btu,omitempty"`
	EquipmentMatch     EquipmentMatch     `json:"equipment_match"`
	Confidence         ConfidenceLevel    `json:"confidence"`
	Breakdown          map[string]float64 `json:"breakdown"`
	Warnings           []string           `json:"warnings"`
	Recommendations    []string           `json:"recommendations"`
}
