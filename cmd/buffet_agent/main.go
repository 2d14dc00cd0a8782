// Package main provides the entry point for the Buffet Strategist CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buffet_agent",
	Short: "Buffet Strategist eating-plan engine",
	Long:  "Buffet Strategist turns a buffet photo or dish list into a phased eating plan optimized for a dietary goal, with portion sizes, skip advice, and a plain-language explanation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
