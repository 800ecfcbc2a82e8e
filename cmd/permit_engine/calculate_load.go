package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/permit-engine/internal/loadcalc"
	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/types"
)

var calculateLoadCmd = &cobra.Command{
	Use:   "calculate-load",
	Short: "Size HVAC equipment with a residential load calculation",
	Long:  "Run either the square-footage rule of thumb or the envelope-physics load calculation against a building description and recommend an equipment tonnage.",
	RunE:  runCalculateLoad,
}

var (
	loadVariant    string
	loadSquareFeet float64
	loadYearBuilt  int
	loadCeiling    float64
	loadBedrooms   int
	loadStories    int
	loadWindows    string
	loadACH50      float64
	loadDucts      bool
	loadCity       string
	loadTonnage    float64
	loadJSON       bool
)

func init() {
	calculateLoadCmd.Flags().StringVar(&loadVariant, "variant", "simplified", "Calculator variant: simplified or manual-j")
	calculateLoadCmd.Flags().Float64Var(&loadSquareFeet, "square-feet", 0, "Conditioned floor area in square feet (required)")
	calculateLoadCmd.Flags().IntVar(&loadYearBuilt, "year-built", 0, "Year the structure was built")
	calculateLoadCmd.Flags().Float64Var(&loadCeiling, "ceiling-height", 0, "Average ceiling height in feet")
	calculateLoadCmd.Flags().IntVar(&loadBedrooms, "bedrooms", 0, "Number of bedrooms")
	calculateLoadCmd.Flags().IntVar(&loadStories, "stories", 0, "Number of stories")
	calculateLoadCmd.Flags().StringVar(&loadWindows, "windows", "", "Window quality: single, double, low-e")
	calculateLoadCmd.Flags().Float64Var(&loadACH50, "ach50", 0, "Blower door result in air changes per hour at 50 Pa")
	calculateLoadCmd.Flags().BoolVar(&loadDucts, "ducts-unconditioned", false, "Ducts run through unconditioned space")
	calculateLoadCmd.Flags().StringVar(&loadCity, "city", "", "City, used to pick the climate zone")
	calculateLoadCmd.Flags().Float64Var(&loadTonnage, "tonnage", 0, "Proposed equipment tonnage to grade against the load")
	calculateLoadCmd.Flags().BoolVar(&loadJSON, "json", false, "Output raw JSON instead of a formatted summary")
	_ = calculateLoadCmd.MarkFlagRequired("square-feet")

	rootCmd.AddCommand(calculateLoadCmd)
}

func runCalculateLoad(_ *cobra.Command, _ []string) error {
	variant := types.CalculatorVariant(loadVariant)
	if variant != types.CalculatorSimplified && variant != types.CalculatorManualJ {
		return fmt.Errorf("unknown calculator variant: %s", loadVariant)
	}

	input := &types.BuildingInput{
		SquareFeet:       loadSquareFeet,
		YearBuilt:        loadYearBuilt,
		CeilingHeightFt:  loadCeiling,
		Bedrooms:         loadBedrooms,
		Stories:          loadStories,
		WindowQuality:    types.WindowQuality(loadWindows),
		ACH50:            loadACH50,
		DuctsUncondition: loadDucts,
		City:             loadCity,
		EquipmentTonnage: loadTonnage,
	}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid building input: %w", err)
	}

	result, err := loadcalc.ForVariant(variant).Calculate(input)
	if err != nil {
		return fmt.Errorf("load calculation failed: %w", err)
	}

	if loadJSON {
		return printJSON(result)
	}
	observability.NewPrinter(os.Stdout).PrintLoadResult(result)
	return nil
}
