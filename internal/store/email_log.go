package store

import (
	"context"
	"database/sql"
	"time"
)

// LogEmail records one digest attempt, sent or failed.
func LogEmail(ctx context.Context, db *sql.DB, recipient, subject string, jobCount int, status string) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO email_log(sent_at, recipient, subject, job_count, status)
VALUES(?,?,?,?,?);`,
		time.Now().UTC().Format(time.RFC3339),
		recipient, subject, jobCount, status)
	return err
}

// LastEmailSent returns when the last successful digest went out, or false
// if none ever has. The alert stage gates its frequency on this.
func LastEmailSent(ctx context.Context, db *sql.DB) (time.Time, bool, error) {
	var sentAt string
	err := db.QueryRowContext(ctx, `
SELECT sent_at FROM email_log
WHERE status = 'sent'
ORDER BY sent_at DESC
LIMIT 1;`).Scan(&sentAt)

	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339, sentAt)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}
