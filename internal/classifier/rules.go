package classifier

import (
	"fmt"

	"github.com/jonathan/permit-engine/internal/types"
)

// Fixed special-consideration strings emitted by the rule table
const (
	considerationSealedDrawings = "Sealed engineering drawings are required for commercial mechanical work"
	considerationFireSafety     = "Fire and life-safety compliance review applies to commercial HVAC systems"
	considerationLargeTonnage   = "Replacement systems above 5 tons require equipment cut sheets and may need electrical service verification"
	considerationLoadCalc       = "A Manual J load calculation must be included with the application"
	considerationNoLoadCalc     = "Load calculation is not required for minor modifications"
	considerationHighBTU        = "Systems above 100,000 BTU require an additional mechanical inspection"
)

// highBTUThreshold triggers the extra inspection consideration regardless of
// category
const highBTUThreshold = 100000.0

// largeTonnageThreshold upgrades residential replacements to moderate
// complexity
const largeTonnageThreshold = 5.0

// evaluateRules runs the deterministic classification table. Cheap and
// auditable; always the first stage of the pipeline.
func evaluateRules(req *types.PermitJobRequest) *types.PermitClassification {
	result := &types.PermitClassification{
		SpecialConsiderations: []string{},
		DecisionMethod:        types.DecisionRules,
	}

	switch {
	case req.PropertyType == types.PropertyCommercial || req.PropertyType == types.PropertyIndustrial:
		result.Category = types.CategoryCommercial
		result.JurisdictionCode = types.CodeCommercial
		result.Complexity = types.ComplexityComplex
		result.Reasoning = fmt.Sprintf("%s property requires a commercial mechanical permit", titleWord(string(req.PropertyType)))
		result.SpecialConsiderations = append(result.SpecialConsiderations,
			considerationSealedDrawings, considerationFireSafety)

	case req.EquipmentType == types.EquipmentDuctwork:
		result.Category = types.CategoryDuctwork
		result.JurisdictionCode = types.CodeDuctwork
		result.Complexity = types.ComplexityModerate
		result.Reasoning = "Ductwork-only jobs are permitted under the dedicated ductwork category"

	case req.JobType == types.JobReplacement:
		result.Category = types.CategoryResidentialReplacement
		result.JurisdictionCode = types.CodeResidentialReplacement
		result.Complexity = types.ComplexitySimple
		result.Reasoning = "Like-for-like residential equipment replacement"
		if req.Tonnage > largeTonnageThreshold {
			result.Complexity = types.ComplexityModerate
			result.SpecialConsiderations = append(result.SpecialConsiderations, considerationLargeTonnage)
		}

	case req.JobType == types.JobNewInstallation:
		result.Category = types.CategoryResidentialNew
		result.JurisdictionCode = types.CodeResidentialNew
		result.Complexity = types.ComplexityModerate
		result.Reasoning = "New residential system installation"
		result.SpecialConsiderations = append(result.SpecialConsiderations, considerationLoadCalc)

	default:
		result.Category = types.CategoryResidentialModification
		result.JurisdictionCode = types.CodeResidentialModification
		result.Complexity = types.ComplexityModerate
		result.Reasoning = fmt.Sprintf("Job type %q is treated as a residential system modification", req.JobType)
		result.SpecialConsiderations = append(result.SpecialConsiderations, considerationNoLoadCalc)
	}

	if req.BTU > highBTUThreshold {
		result.SpecialConsiderations = append(result.SpecialConsiderations, considerationHighBTU)
	}

	return result
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
