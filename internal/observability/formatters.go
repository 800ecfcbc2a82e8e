package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/permit-engine/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 64

// Printer handles formatted output for verbose CLI mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLocationAnalysis outputs a human-readable summary of a location analysis.
func (p *Printer) PrintLocationAnalysis(analysis *types.LocationAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("County:        %s\n", analysis.Address.County))
	sb.WriteString(fmt.Sprintf("Jurisdiction:  %s (%s)\n", analysis.Jurisdiction.PrimaryAuthority, analysis.Jurisdiction.Type))
	sb.WriteString(fmt.Sprintf("Permit office: %s\n", analysis.Jurisdiction.PermitOffice))
	sb.WriteString(fmt.Sprintf("Flood zone:    %s", analysis.FloodZone.Zone))
	if analysis.FloodZone.RequiresElevationCertificate {
		sb.WriteString(" (elevation certificate required)")
	} else if analysis.FloodZone.IsModerateRisk {
		sb.WriteString(" (moderate risk)")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Wind design:   %d mph, %s\n", analysis.Coastal.DesignWindSpeedMph, analysis.Coastal.WindZone))
	if analysis.HeightRestriction.HasRestriction {
		sb.WriteString(fmt.Sprintf("Height limit:  %.0f ft (%s, %.1f mi)\n",
			analysis.HeightRestriction.MaxHeightFt,
			analysis.HeightRestriction.NearbyLandmark,
			analysis.HeightRestriction.DistanceMiles))
	}
	sb.WriteString(fmt.Sprintf("Confidence:    %s\n", analysis.Confidence))
	if len(analysis.RequiredForms) > 0 {
		sb.WriteString("\nRequired forms:\n")
		for _, form := range analysis.RequiredForms {
			sb.WriteString(fmt.Sprintf("  - %s\n", form))
		}
	}
	if len(analysis.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range analysis.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", w))
		}
	}

	p.printBox("LOCATION ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintClassification outputs a human-readable summary of a permit classification.
func (p *Printer) PrintClassification(result *types.PermitClassification) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category:   %s\n", result.Category))
	sb.WriteString(fmt.Sprintf("Code:       %s\n", result.JurisdictionCode))
	sb.WriteString(fmt.Sprintf("Complexity: %s\n", result.Complexity))
	sb.WriteString(fmt.Sprintf("Method:     %s\n", result.DecisionMethod))
	sb.WriteString(fmt.Sprintf("Reasoning:  %s\n", result.Reasoning))
	if len(result.SpecialConsiderations) > 0 {
		sb.WriteString("\nSpecial considerations:\n")
		for _, c := range result.SpecialConsiderations {
			sb.WriteString(fmt.Sprintf("  - %s\n", c))
		}
	}

	p.printBox("PERMIT CLASSIFICATION", strings.TrimRight(sb.String(), "\n"))
}

// PrintLoadResult outputs a human-readable summary of a load calculation.
func (p *Printer) PrintLoadResult(result *types.LoadCalculationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommended:  %.1f tons (%.1f - %.1f acceptable)\n",
		result.RecommendedTonnage, result.MinTonnage, result.MaxTonnage))
	sb.WriteString(fmt.Sprintf("Total load:   %.0f BTU/hr\n", result.TotalBTULoad))
	if result.SensibleBTU > 0 {
		sb.WriteString(fmt.Sprintf("Sensible:     %.0f BTU/hr\n", result.SensibleBTU))
		sb.WriteString(fmt.Sprintf("Latent:       %.0f BTU/hr\n", result.LatentBTU))
	}
	if result.HeatingBTU > 0 {
		sb.WriteString(fmt.Sprintf("Heating:      %.0f BTU/hr\n", result.HeatingBTU))
	}
	sb.WriteString(fmt.Sprintf("Match:        %s\n", result.EquipmentMatch))
	sb.WriteString(fmt.Sprintf("Confidence:   %s\n", result.Confidence))

	if len(result.Breakdown) > 0 {
		sb.WriteString("\nBreakdown:\n")
		keys := make([]string, 0, len(result.Breakdown))
		for k := range result.Breakdown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %-24s %10.1f\n", k, result.Breakdown[k]))
		}
	}
	for _, w := range result.Warnings {
		sb.WriteString(fmt.Sprintf("\n! %s", w))
	}
	for _, r := range result.Recommendations {
		sb.WriteString(fmt.Sprintf("\n> %s", r))
	}

	p.printBox("LOAD CALCULATION", strings.TrimRight(sb.String(), "\n"))
}
