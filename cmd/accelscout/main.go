// Package main is the accelscout CLI. Each pipeline stage is a subcommand,
// and serve exposes the localhost API for dashboards.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "accelscout",
	Short: "Startup accelerator job scout",
	Long: "accelscout maintains a directory of startup accelerators, scrapes their\n" +
		"careers pages, scores new postings against your profile, and emails a\n" +
		"digest of the best matches.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
