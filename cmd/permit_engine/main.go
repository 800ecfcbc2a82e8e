// Package main provides the entry point for the HVAC permit requirements
// determination engine CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/classifier"
	"github.com/jonathan/permit-engine/internal/config"
	"github.com/jonathan/permit-engine/internal/engine"
	"github.com/jonathan/permit-engine/internal/floodmap"
	"github.com/jonathan/permit-engine/internal/geocode"
	"github.com/jonathan/permit-engine/internal/geodata"
	"github.com/jonathan/permit-engine/internal/llm"
	"github.com/jonathan/permit-engine/internal/location"
	"github.com/jonathan/permit-engine/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "permit_engine",
	Short: "HVAC Permit Requirements Determination Engine",
	Long:  "Determines jurisdiction, flood, wind, and height requirements for HVAC permit applications in the Tampa Bay region, classifies the permit type, and sizes equipment with residential load calculations.",
}

var (
	configPath string
	apiKeyFlag string
	noAI       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().BoolVar(&noAI, "no-ai", false, "Disable AI escalation; classify with rules only")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadEngineConfig merges the config file (if any) over environment values,
// then applies CLI flag overrides.
func loadEngineConfig() (config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if apiKeyFlag != "" {
		cfg.APIKey = apiKeyFlag
	}
	if noAI {
		cfg.DisableAI = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildEngine wires the full determination engine from configuration.
// When no API key is configured (or AI is disabled) the classifier runs
// rules-only. The returned cleanup function closes the AI client.
func buildEngine(ctx context.Context, cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) (*engine.Engine, func(), error) {
	tables := geodata.Default()
	geocoder := geocode.NewCensusClient(cfg.GeocoderURL, logger)
	floods := floodmap.NewNFHLClient(cfg.FloodmapURL, logger)
	analyzer := location.NewAnalyzer(tables, geocoder, floods, logger, metrics)

	var ai llm.Client
	cleanup := func() {}
	if cfg.APIKey != "" && !cfg.DisableAI {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		ai = client
		cleanup = func() { _ = client.Close() }
	}
	cls := classifier.New(ai, logger, metrics)

	return engine.New(analyzer, cls, logger, metrics), cleanup, nil
}
