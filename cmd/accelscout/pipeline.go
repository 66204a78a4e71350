package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"accelscout/internal/pipeline"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run every configured stage once",
	Long: "Run discover, validate, scrape, match, and alert in order, recording\n" +
		"the run in the state store. Stages disabled in config are skipped, and\n" +
		"one failing stage does not stop the rest.",
	RunE: runPipelineCmd,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := pipeline.New(cfg, db.Pool, nil, dir).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d/%d stages ok, %d scraped, %d scored, %d alerted\n",
		run.ID, run.StagesOK, run.StagesRun, run.JobsScraped, run.JobsScored, run.AlertsSent)
	if !run.Success {
		return fmt.Errorf("run %s failed (%d/%d stages ok)", run.ID, run.StagesOK, run.StagesRun)
	}
	return nil
}
