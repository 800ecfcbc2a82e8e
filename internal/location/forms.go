package location

import (
	"fmt"
	"strings"

	"github.com/jonathan/permit-engine/internal/types"
)

// Form identifiers handed to document generation. These are hints for the
// package checklist, never control flow.
const (
	FormMunicipalApplication = "municipal-permit-application"
	FormCountyApplication    = "county-permit-application"
	FormElevationCertificate = "fema-elevation-certificate"
	FormWindLoadWorksheet    = "wind-load-calculation-worksheet"
	FormHistoricReview       = "historic-district-review-application"
	FormHOAApprovalLetter    = "hoa-approval-letter"
	FormEnvironmentalReview  = "environmental-review-checklist"
	FormAirspaceHeightReview = "airspace-height-review"
)

// deriveRequiredForms is a pure function of the detection results producing
// the ordered checklist of required forms
func deriveRequiredForms(analysis *types.LocationAnalysis) []string {
	forms := make([]string, 0, 8)

	if analysis.Jurisdiction.Type == types.JurisdictionIncorporated {
		forms = append(forms, FormMunicipalApplication)
	} else {
		forms = append(forms, FormCountyApplication)
	}
	if analysis.FloodZone.RequiresElevationCertificate {
		forms = append(forms, FormElevationCertificate)
	}
	if analysis.Coastal.RequiresWindCalculation {
		forms = append(forms, FormWindLoadWorksheet)
	}
	if analysis.SpecialDistricts.Historic {
		forms = append(forms, FormHistoricReview)
	}
	if analysis.SpecialDistricts.HasHOA {
		forms = append(forms, FormHOAApprovalLetter)
	}
	if analysis.SpecialDistricts.EnvironmentalReview {
		forms = append(forms, FormEnvironmentalReview)
	}
	if analysis.HeightRestriction.HasRestriction {
		forms = append(forms, FormAirspaceHeightReview)
	}
	return forms
}

// deriveWarnings appends human-readable notices for UI and document
// generation, derived from the detection results
func deriveWarnings(analysis *types.LocationAnalysis) {
	if analysis.FloodZone.IsFloodZone {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
			"Property is in FEMA flood zone %s; equipment must be elevated and an elevation certificate filed",
			analysis.FloodZone.Zone))
	} else if analysis.FloodZone.IsModerateRisk {
		analysis.Warnings = append(analysis.Warnings,
			"Property is in a moderate-risk flood zone; elevation certificate not required but flood insurance is advisable")
	}
	if analysis.Coastal.RequiresWindCalculation {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
			"Site is in the %s (%d mph design wind speed); tie-down and wind load calculations are required",
			analysis.Coastal.WindZone, analysis.Coastal.DesignWindSpeedMph))
	}
	if analysis.HeightRestriction.HasRestriction {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(
			"Site is %.1f miles from %s; equipment installations above %.0f ft need airspace review",
			analysis.HeightRestriction.DistanceMiles,
			analysis.HeightRestriction.NearbyLandmark,
			analysis.HeightRestriction.MaxHeightFt))
	}
	analysis.Warnings = append(analysis.Warnings, analysis.SpecialDistricts.Reasons...)
}

// titleCase capitalizes each word of a city name for display
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
