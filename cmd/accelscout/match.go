package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"accelscout/internal/match"
	"accelscout/internal/secrets"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score new postings against your profile",
	Long: "Score every posting in jobs_raw.csv with Gemini (or the keyword\n" +
		"fallback when no key or budget is available) and write jobs_scored.csv.",
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var scorer match.Scorer
	if key, err := secrets.GetGeminiKey(); err != nil {
		log.Printf("[match] no Gemini key (%v), using the fallback scorer", err)
	} else {
		g, err := match.NewGeminiScorer(ctx, key, cfg.Match.Model)
		if err != nil {
			log.Printf("[match] gemini init: %v, using the fallback scorer", err)
		} else {
			defer g.Close()
			scorer = g
		}
	}

	n, err := match.ScoreNewJobs(ctx, cfg, scorer, dir)
	if err != nil {
		return err
	}
	fmt.Printf("%d jobs scored\n", n)
	return nil
}
