package classifier

import "github.com/jonathan/permit-engine/internal/types"

// Confidence predicate thresholds
const (
	lowConfidenceBTUThreshold   = 150000.0
	lowConfidenceNotesThreshold = 50
)

// ruleConfidence is the outcome of the confidence predicate
type ruleConfidence string

const (
	confidenceHigh ruleConfidence = "high"
	confidenceLow  ruleConfidence = "low"
)

// assessConfidence decides whether the rule result can stand on its own or
// the job should be escalated to the AI classifier. High-confidence signals
// win over low-confidence ones, so a commercial job is never escalated
// however unusual its other attributes.
func assessConfidence(req *types.PermitJobRequest) ruleConfidence {
	// Unambiguous rule-table hits
	if req.PropertyType == types.PropertyCommercial || req.PropertyType == types.PropertyIndustrial {
		return confidenceHigh
	}
	if req.EquipmentType == types.EquipmentDuctwork {
		return confidenceHigh
	}
	if req.JobType == types.JobReplacement && req.Tonnage <= largeTonnageThreshold {
		return confidenceHigh
	}

	// Edge-case signals
	if req.JobType == types.JobReplacement && req.Tonnage > largeTonnageThreshold {
		return confidenceLow
	}
	if req.JobType == types.JobModification || req.JobType == types.JobRepair {
		return confidenceLow
	}
	if req.BTU > lowConfidenceBTUThreshold {
		return confidenceLow
	}
	if len(req.AdditionalDetails) > lowConfidenceNotesThreshold {
		return confidenceLow
	}

	return confidenceHigh
}
