package alert

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/metrics"
	"accelscout/internal/store"
)

// SendJobAlerts filters the scored jobs into a digest and emails it.
// force bypasses the frequency gate. Returns how many jobs went out.
func SendJobAlerts(ctx context.Context, cfg config.Config, db *sql.DB, mailer Mailer, dataDir string, force bool) (int, error) {
	if !cfg.Alert.Enabled {
		log.Printf("[alert] disabled in config, skipping")
		return 0, nil
	}

	jobs, err := csvio.ReadScoredJobs(filepath.Join(dataDir, "jobs_scored.csv"))
	if err != nil {
		return 0, fmt.Errorf("read scored jobs: %w", err)
	}

	picked := FilterJobs(jobs, cfg)
	if len(picked) == 0 {
		log.Printf("[alert] nothing clears the bar (min score %.1f), not sending", cfg.Alert.MinScore)
		return 0, nil
	}

	if !force {
		ok, err := shouldSend(ctx, db, cfg.Alert.Frequency)
		if err != nil {
			return 0, err
		}
		if !ok {
			log.Printf("[alert] %s digest went out recently, skipping (--force overrides)", cfg.Alert.Frequency)
			return 0, nil
		}
	}

	d, err := BuildDigest(picked, cfg)
	if err != nil {
		return 0, err
	}

	if err := mailer.Send(ctx, d); err != nil {
		if db != nil {
			if logErr := store.LogEmail(ctx, db, cfg.Alert.Recipient, d.Subject, len(picked), "failed"); logErr != nil {
				log.Printf("[alert] record failed send: %v", logErr)
			}
		}
		return 0, fmt.Errorf("send digest: %w", err)
	}

	if db != nil {
		if err := store.LogEmail(ctx, db, cfg.Alert.Recipient, d.Subject, len(picked), "sent"); err != nil {
			log.Printf("[alert] record send: %v", err)
		}
	}
	metrics.AlertsSent.Inc()
	log.Printf("[alert] sent %d jobs to %s", len(picked), cfg.Alert.Recipient)
	return len(picked), nil
}

// shouldSend gates on the last successful send. Failed attempts do not
// count, so a broken SMTP setup can be retried immediately once fixed.
func shouldSend(ctx context.Context, db *sql.DB, frequency string) (bool, error) {
	if db == nil || frequency == "immediate" {
		return true, nil
	}

	last, ok, err := store.LastEmailSent(ctx, db)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	gap := 24 * time.Hour
	if frequency == "weekly" {
		gap = 7 * 24 * time.Hour
	}
	return time.Since(last) >= gap, nil
}
