package store

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL DEFAULT '',
  stages_run INTEGER NOT NULL DEFAULT 0,
  stages_ok INTEGER NOT NULL DEFAULT 0,
  jobs_scraped INTEGER NOT NULL DEFAULT 0,
  jobs_scored INTEGER NOT NULL DEFAULT 0,
  alerts_sent INTEGER NOT NULL DEFAULT 0,
  success INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  job_url TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  platform TEXT NOT NULL DEFAULT '',
  org_name TEXT NOT NULL DEFAULT '',
  org_website TEXT NOT NULL DEFAULT '',
  org_country TEXT NOT NULL DEFAULT '',
  org_focus TEXT NOT NULL DEFAULT '',
  source_url TEXT NOT NULL DEFAULT '',
  ai_score REAL NOT NULL DEFAULT 0,
  recommendation TEXT NOT NULL DEFAULT '',
  scored_date TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS email_log (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sent_at TEXT NOT NULL,
  recipient TEXT NOT NULL,
  subject TEXT NOT NULL,
  job_count INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_job_url
ON jobs(job_url);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_ai_score
ON jobs(ai_score DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_runs_started_at
ON runs(started_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_email_log_sent_at
ON email_log(sent_at DESC);
`); err != nil {
		return err
	}

	// Back-compat for dev DBs that might predate the scoring columns.
	if !columnExists(tx, "jobs", "recommendation") {
		if _, err := tx.Exec(`ALTER TABLE jobs ADD COLUMN recommendation TEXT NOT NULL DEFAULT '';`); err != nil {
			return err
		}
	}
	if !columnExists(tx, "jobs", "scored_date") {
		if _, err := tx.Exec(`ALTER TABLE jobs ADD COLUMN scored_date TEXT NOT NULL DEFAULT '';`); err != nil {
			return err
		}
	}

	// Mark schema v1
	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}
