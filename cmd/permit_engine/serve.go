package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for location analysis, permit classification, load calculation, and merged determinations.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort applies the flag > file > env precedence: an explicitly set
// --port always wins, the flag default only fills in when nothing else
// configured a port.
func resolvePort(flagChanged bool, flagPort, configuredPort int) int {
	if flagChanged || configuredPort == 0 {
		return flagPort
	}
	return configuredPort
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}
	cfg.Port = resolvePort(cmd.Flags().Changed("port"), servePort, cfg.Port)

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewMetrics()
	eng, cleanup, err := buildEngine(context.Background(), cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(server.Config{Port: cfg.Port}, eng, logger)
	return srv.Start()
}
