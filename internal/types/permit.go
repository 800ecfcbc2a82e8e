package types

import "github.com/go-playground/validator/v10"

// EquipmentType identifies the class of HVAC equipment being permitted
type EquipmentType string

// Equipment types accepted by the classifier
const (
	EquipmentCentralAC EquipmentType = "central-ac"
	EquipmentHeatPump  EquipmentType = "heat-pump"
	EquipmentFurnace   EquipmentType = "furnace"
	EquipmentMiniSplit EquipmentType = "mini-split"
	EquipmentDuctwork  EquipmentType = "ductwork"
	EquipmentPackaged  EquipmentType = "packaged-unit"
)

// JobType identifies the nature of the work
type JobType string

// Job types accepted by the classifier
const (
	JobReplacement     JobType = "replacement"
	JobNewInstallation JobType = "new-installation"
	JobModification    JobType = "modification"
	JobRepair          JobType = "repair"
)

// PropertyType identifies the occupancy class of the structure
type PropertyType string

// Property types
const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyIndustrial  PropertyType = "industrial"
	PropertyMultiFamily PropertyType = "multi-family"
)

// PermitJobRequest describes the equipment job a contractor wants permitted.
// Callers validate with Validate() before handing the request to the engine.
type PermitJobRequest struct {
	EquipmentType     EquipmentType `json:"equipment_type" validate:"required"`
	JobType           JobType       `json:"job_type" validate:"required"`
	BTU               float64       `json:"btu,omitempty" validate:"gte=0"`
	Tonnage           float64       `json:"tonnage,omitempty" validate:"gte=0,lte=100"`
	PropertyType      PropertyType  `json:"property_type,omitempty"`
	Address           SiteAddress   `json:"address"`
	AdditionalDetails string        `json:"additional_details,omitempty"`
}

// Validate validates the PermitJobRequest using the validator.
func (r *PermitJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Complexity grades how involved the permit process will be
type Complexity string

// Complexity grades
const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// DecisionMethod records which stage of the classification pipeline produced the result
type DecisionMethod string

// Decision methods
const (
	DecisionRules DecisionMethod = "rules"
	DecisionAI    DecisionMethod = "ai"
)

// Permit categories and their jurisdiction codes
const (
	CategoryCommercial              = "hvac-commercial"
	CategoryDuctwork                = "hvac-ductwork"
	CategoryResidentialReplacement  = "hvac-residential-replacement"
	CategoryResidentialNew          = "hvac-residential-new"
	CategoryResidentialModification = "hvac-residential-modification"

	CodeCommercial              = "BLD-HVAC-COMM"
	CodeDuctwork                = "BLD-HVAC-DUCT"
	CodeResidentialReplacement  = "BLD-HVAC-RES-REPL"
	CodeResidentialNew          = "BLD-HVAC-RES-NEW"
	CodeResidentialModification = "BLD-HVAC-RES-MOD"
)

// PermitClassification is the classifier's decision record
type PermitClassification struct {
	Category              string         `json:"category"`
	JurisdictionCode      string         `json:"jurisdiction_code"`
	Reasoning             string         `json:"reasoning"`
	SpecialConsiderations []string       `json:"special_considerations"`
	Complexity            Complexity     `json:"complexity"`
	DecisionMethod        DecisionMethod `json:"decision_method"`
}
