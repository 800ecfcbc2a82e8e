package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/types"
)

var classifyPermitCmd = &cobra.Command{
	Use:   "classify-permit",
	Short: "Classify an HVAC job into a permit category",
	Long:  "Classify an HVAC job into a permit category and jurisdiction code. Rules handle the clear cases; ambiguous jobs escalate to the AI provider when an API key is configured.",
	RunE:  runClassifyPermit,
}

var (
	classifyEquipment string
	classifyJobType   string
	classifyBTU       float64
	classifyTonnage   float64
	classifyProperty  string
	classifyStreet    string
	classifyCity      string
	classifyNotes     string
	classifyJSON      bool
)

func init() {
	classifyPermitCmd.Flags().StringVar(&classifyEquipment, "equipment", "", "Equipment type: central-ac, heat-pump, furnace, mini-split, ductwork, packaged-unit (required)")
	classifyPermitCmd.Flags().StringVar(&classifyJobType, "job-type", "", "Job type: replacement, new-installation, modification, repair (required)")
	classifyPermitCmd.Flags().Float64Var(&classifyBTU, "btu", 0, "Equipment capacity in BTU/hr")
	classifyPermitCmd.Flags().Float64Var(&classifyTonnage, "tonnage", 0, "Equipment capacity in tons")
	classifyPermitCmd.Flags().StringVar(&classifyProperty, "property-type", "residential", "Property type: residential, commercial, industrial, multi-family")
	classifyPermitCmd.Flags().StringVar(&classifyStreet, "street", "", "Street address")
	classifyPermitCmd.Flags().StringVar(&classifyCity, "city", "", "City name")
	classifyPermitCmd.Flags().StringVar(&classifyNotes, "notes", "", "Additional job details")
	classifyPermitCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output raw JSON instead of a formatted summary")
	_ = classifyPermitCmd.MarkFlagRequired("equipment")
	_ = classifyPermitCmd.MarkFlagRequired("job-type")

	rootCmd.AddCommand(classifyPermitCmd)
}

func runClassifyPermit(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	req := &types.PermitJobRequest{
		EquipmentType: types.EquipmentType(classifyEquipment),
		JobType:       types.JobType(classifyJobType),
		BTU:           classifyBTU,
		Tonnage:       classifyTonnage,
		PropertyType:  types.PropertyType(classifyProperty),
		Address: types.SiteAddress{
			Street: classifyStreet,
			City:   classifyCity,
		},
		AdditionalDetails: classifyNotes,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid job request: %w", err)
	}

	logger := zap.NewNop()
	if !classifyJSON {
		logger, err = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	metrics := observability.NewMetricsForTesting()
	eng, cleanup, err := buildEngine(context.Background(), cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := eng.ClassifyPermit(context.Background(), req)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifyJSON {
		return printJSON(result)
	}
	observability.NewPrinter(os.Stdout).PrintClassification(result)
	return nil
}
