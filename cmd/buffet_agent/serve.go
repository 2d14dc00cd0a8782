package main

import (
	"fmt"

	"github.com/jonathan/buffet-strategist/internal/config"
	"github.com/jonathan/buffet-strategist/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for buffet analysis and strategy planning.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Defaults()
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	cfg.ApplyEnv()
	if servePort > 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:                 cfg.Port,
		StomachCapacityML:    cfg.StomachCapacityML,
		DefaultCalorieLimit:  float64(cfg.DefaultCalorieLimit),
		GeminiAPIKey:         cfg.GeminiAPIKey,
		VisionModel:          cfg.VisionModel,
		VisionTimeoutSeconds: cfg.VisionTimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
