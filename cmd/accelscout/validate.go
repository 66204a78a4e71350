package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"accelscout/internal/pipeline"
	"accelscout/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Probe pending accelerators and grade their sites",
	Long: "Check each pending directory entry for a reachable website and careers\n" +
		"page, score it, and promote or reject it in place.",
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	n, err := validate.ValidateAccelerators(cmd.Context(), cfg, filepath.Join(dir, pipeline.DirectoryFile))
	if err != nil {
		return err
	}
	fmt.Printf("%d accelerators validated\n", n)
	return nil
}
