package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"accelscout/internal/alert"
	"accelscout/internal/secrets"
)

var alertForce bool

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Email a digest of the best current matches",
	Long: "Filter jobs_scored.csv down to the postings worth attention and email\n" +
		"them as an HTML digest, honoring the configured send frequency.",
	RunE: runAlert,
}

func init() {
	alertCmd.Flags().BoolVar(&alertForce, "force", false, "Send even if the frequency gate says to wait")
	rootCmd.AddCommand(alertCmd)
}

func runAlert(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if !cfg.Alert.Enabled {
		return errors.New("alerts are disabled (set alert.enabled in config.yml)")
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	password, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
	if err != nil {
		return err
	}

	sent, err := alert.SendJobAlerts(cmd.Context(), cfg, db.Pool, alert.NewMailer(cfg, password), dir, alertForce)
	if err != nil {
		return err
	}
	if sent == 0 {
		fmt.Println("nothing to send")
		return nil
	}
	fmt.Printf("digest sent with %d jobs\n", sent)
	return nil
}
