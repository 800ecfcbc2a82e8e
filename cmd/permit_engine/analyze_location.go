package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/observability"
)

var analyzeLocationCmd = &cobra.Command{
	Use:   "analyze-location",
	Short: "Resolve an address into jurisdiction, flood, wind, and height requirements",
	Long:  "Resolve a site address into the issuing jurisdiction and permit office, FEMA flood zone, wind design requirements, equipment height limits, and special district reviews.",
	RunE:  runAnalyzeLocation,
}

var (
	analyzeStreet string
	analyzeCity   string
	analyzeState  string
	analyzeZip    string
	analyzeJSON   bool
)

func init() {
	analyzeLocationCmd.Flags().StringVar(&analyzeStreet, "street", "", "Street address (required)")
	analyzeLocationCmd.Flags().StringVar(&analyzeCity, "city", "", "City name")
	analyzeLocationCmd.Flags().StringVar(&analyzeState, "state", "FL", "State")
	analyzeLocationCmd.Flags().StringVar(&analyzeZip, "zip", "", "ZIP code")
	analyzeLocationCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output raw JSON instead of a formatted summary")
	_ = analyzeLocationCmd.MarkFlagRequired("street")

	rootCmd.AddCommand(analyzeLocationCmd)
}

func runAnalyzeLocation(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if !analyzeJSON {
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

	analysis := eng.AnalyzeLocation(context.Background(), analyzeStreet, analyzeCity, analyzeState, analyzeZip)

	if analyzeJSON {
		return printJSON(analysis)
	}
	observability.NewPrinter(os.Stdout).PrintLocationAnalysis(analysis)
	return nil
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
