package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/permit-engine/internal/types"
)

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(&types.PermitClassification{
		Category:              types.CategoryResidentialReplacement,
		JurisdictionCode:      types.CodeResidentialReplacement,
		Reasoning:             "Like-for-like residential equipment replacement",
		SpecialConsiderations: []string{"Equipment cut sheets required"},
		Complexity:            types.ComplexitySimple,
		DecisionMethod:        types.DecisionRules,
	})

	out := buf.String()
	assert.Contains(t, out, "PERMIT CLASSIFICATION")
	assert.Contains(t, out, "hvac-residential-replacement")
	assert.Contains(t, out, "BLD-HVAC-RES-REPL")
	assert.Contains(t, out, "Equipment cut sheets required")

	// Every line fits the box
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, "line %q", line)
	}
}

func TestPrintLoadResult_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLoadResult(&types.LoadCalculationResult{
		RecommendedTonnage: 3.0,
		MinTonnage:         2.7,
		MaxTonnage:         3.45,
		TotalBTULoad:       31791,
		EquipmentMatch:     types.MatchPerfect,
		Confidence:         types.ConfidenceHigh,
		Breakdown:          map[string]float64{"walls": 4200, "roof": 6100},
		Warnings:           []string{strings.Repeat("a very long warning about duct leakage ", 5)},
	})

	out := buf.String()
	assert.Contains(t, out, "LOAD CALCULATION")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "roof")
}

func TestPrint_NilInputsAreNoOps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLocationAnalysis(nil)
	p.PrintClassification(nil)
	p.PrintLoadResult(nil)

	assert.Empty(t, buf.String())
}
