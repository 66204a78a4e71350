package store

import (
	"context"
	"database/sql"
	"time"
)

// Run is one pipeline execution, started when the run lock is taken and
// finished with whatever the stages produced.
type Run struct {
	ID          string `json:"id"`
	StartedAt   string `json:"startedAt"`
	FinishedAt  string `json:"finishedAt"`
	StagesRun   int    `json:"stagesRun"`
	StagesOK    int    `json:"stagesOk"`
	JobsScraped int    `json:"jobsScraped"`
	JobsScored  int    `json:"jobsScored"`
	AlertsSent  int    `json:"alertsSent"`
	Success     bool   `json:"success"`
	Notes       string `json:"notes"`
}

func StartRun(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO runs(id, started_at) VALUES(?, ?);`,
		id, time.Now().UTC().Format(time.RFC3339))
	return err
}

func FinishRun(ctx context.Context, db *sql.DB, r Run) error {
	success := 0
	if r.Success {
		success = 1
	}
	_, err := db.ExecContext(ctx, `
UPDATE runs SET
  finished_at = ?,
  stages_run = ?,
  stages_ok = ?,
  jobs_scraped = ?,
  jobs_scored = ?,
  alerts_sent = ?,
  success = ?,
  notes = ?
WHERE id = ?;`,
		time.Now().UTC().Format(time.RFC3339),
		r.StagesRun, r.StagesOK, r.JobsScraped, r.JobsScored, r.AlertsSent,
		success, r.Notes, r.ID)
	return err
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, started_at, finished_at, stages_run, stages_ok, jobs_scraped, jobs_scored, alerts_sent, success, notes
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var success int
		if err := rows.Scan(
			&r.ID, &r.StartedAt, &r.FinishedAt,
			&r.StagesRun, &r.StagesOK,
			&r.JobsScraped, &r.JobsScored, &r.AlertsSent,
			&success, &r.Notes,
		); err != nil {
			return nil, err
		}
		r.Success = success == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastRun returns the most recent run, or false when none exists yet.
func LastRun(ctx context.Context, db *sql.DB) (Run, bool, error) {
	runs, err := ListRuns(ctx, db, 1)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}
