package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"accelscout/internal/pipeline"
	"accelscout/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape careers pages of validated accelerators",
	Long: "Visit every active directory entry, extract job postings from its\n" +
		"careers page, and write the deduplicated set to jobs_raw.csv.",
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	scfg := scrape.Config{
		UserAgent:      cfg.Scrape.UserAgent,
		Timeout:        time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
		LocatorTimeout: time.Duration(cfg.Scrape.LocatorSeconds) * time.Second,
		OrgDelay:       time.Duration(cfg.Scrape.OrgDelaySeconds) * time.Second,
		HostRate:       cfg.Scrape.HostRate,
		HostBurst:      cfg.Scrape.HostBurst,
	}

	out := filepath.Join(dir, "jobs_raw.csv")
	n, err := scrape.ScrapeHighQualityJobs(cmd.Context(), scfg, filepath.Join(dir, pipeline.DirectoryFile), out)
	if err != nil {
		return err
	}
	fmt.Printf("%d postings saved to %s\n", n, out)
	return nil
}
