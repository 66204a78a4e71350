package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"accelscout/internal/discover"
	"accelscout/internal/pipeline"
	"accelscout/internal/secrets"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find new accelerators via programmable search",
	Long: "Run the discovery queries against Google Programmable Search and append\n" +
		"any accelerator not already in the directory, pending validation.",
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	key, err := secrets.GetCSEKey()
	if err != nil {
		return err
	}
	id, err := secrets.GetCSEID()
	if err != nil {
		return err
	}

	s, err := discover.NewCSESearcher(cmd.Context(), key, id)
	if err != nil {
		return fmt.Errorf("search client: %w", err)
	}

	added, err := discover.DiscoverNewAccelerators(cmd.Context(), cfg, s, filepath.Join(dir, pipeline.DirectoryFile))
	if err != nil {
		return err
	}
	fmt.Printf("%d new accelerators added\n", added)
	return nil
}
