package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/types"
)

var determineCmd = &cobra.Command{
	Use:   "determine",
	Short: "Produce a complete permit requirements determination",
	Long:  "Run location analysis, permit classification, and load calculation against a JSON request file and produce the merged decision record for document generation.",
	RunE:  runDetermine,
}

// determineInput is the JSON request file shape for the determine command
type determineInput struct {
	Job      types.PermitJobRequest `json:"job"`
	Building *types.BuildingInput   `json:"building,omitempty"`
}

var (
	determineInFile  string
	determineOutFile string
	determineJSON    bool
)

func init() {
	determineCmd.Flags().StringVarP(&determineInFile, "in", "i", "", "Path to JSON request file (required)")
	determineCmd.Flags().StringVarP(&determineOutFile, "out", "o", "", "Path to write the decision JSON (defaults to stdout)")
	determineCmd.Flags().BoolVar(&determineJSON, "json", false, "Output raw JSON instead of formatted summaries")
	_ = determineCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(determineCmd)
}

func runDetermine(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(determineInFile)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	var req determineInput
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request JSON: %w", err)
	}
	if err := req.Job.Validate(); err != nil {
		return fmt.Errorf("invalid job request: %w", err)
	}
	if req.Building != nil {
		if err := req.Building.Validate(); err != nil {
			return fmt.Errorf("invalid building input: %w", err)
		}
	}

	logger := zap.NewNop()
	if !determineJSON && determineOutFile == "" {
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

	decision, err := eng.Determine(context.Background(), &req.Job, req.Building)
	if err != nil {
		return fmt.Errorf("determination failed: %w", err)
	}

	if determineOutFile != "" {
		jsonBytes, err := json.MarshalIndent(decision, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal decision: %w", err)
		}
		if err := os.WriteFile(determineOutFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Decision %s written to %s\n", decision.ID, determineOutFile)
		return nil
	}

	if determineJSON {
		return printJSON(decision)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintLocationAnalysis(decision.Location)
	printer.PrintClassification(decision.Classification)
	if decision.Load != nil {
		printer.PrintLoadResult(decision.Load)
	}
	return nil
}
