package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Job is the API-facing row shape served by /jobs.
type Job struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Location       string  `json:"location"`
	URL            string  `json:"url"`
	Platform       string  `json:"platform"`
	Org            string  `json:"org"`
	OrgCountry     string  `json:"orgCountry"`
	Score          float64 `json:"score"`
	Recommendation string  `json:"recommendation"`
	FirstSeen      string  `json:"firstSeen"`
	ScoredDate     string  `json:"scoredDate"`
}

type JobUpsert struct {
	JobURL     string
	Title      string
	Location   string
	Platform   string
	OrgName    string
	OrgWebsite string
	OrgCountry string
	OrgFocus   string
	SourceURL  string
}

// UpsertScraped records a posting seen by the current run. New URLs insert;
// known URLs just refresh title, location, and last_seen so scraper re-runs
// never wipe an existing score.
func UpsertScraped(db *sql.DB, j JobUpsert) (added bool, err error) {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = db.Exec(`
INSERT OR IGNORE INTO jobs (job_url, title, location, platform, org_name, org_website, org_country, org_focus, source_url, first_seen, last_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		j.JobURL, j.Title, j.Location, j.Platform, j.OrgName, j.OrgWebsite, j.OrgCountry, j.OrgFocus, j.SourceURL, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}

	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil && changes > 0 {
		return true, nil
	}

	_, err = db.Exec(`
UPDATE jobs SET title = ?, location = ?, last_seen = ? WHERE job_url = ?;`,
		j.Title, j.Location, now, j.JobURL)
	return false, err
}

// ApplyScore copies a match-stage result onto the stored row. Unknown URLs
// are ignored; the CSV contract, not the DB, drives scoring.
func ApplyScore(db *sql.DB, jobURL string, score float64, recommendation, scoredDate string) error {
	_, err := db.Exec(`
UPDATE jobs SET ai_score = ?, recommendation = ?, scored_date = ? WHERE job_url = ?;`,
		score, recommendation, scoredDate, jobURL)
	if err != nil {
		return fmt.Errorf("apply score: %w", err)
	}
	return nil
}

type ListJobsOpts struct {
	Sort   string // score | date | org | title
	Window string // 24h | 7d | all
	Limit  int
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]Job, error) {
	// defaults
	if opts.Sort == "" {
		opts.Sort = "score"
	}
	if opts.Window == "" {
		opts.Window = "7d"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"score": "ai_score",
		"date":  "first_seen",
		"org":   "org_name",
		"title": "title",
	}[opts.Sort]
	if sortCol == "" {
		sortCol = "ai_score"
	}
	order := "desc"
	switch opts.Sort {
	case "org", "title":
		order = "asc"
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE last_seen >= datetime('now','-24 hours')"
	case "7d":
		where = "WHERE last_seen >= datetime('now','-7 days')"
	case "all":
		// no filter
	default:
		where = "WHERE last_seen >= datetime('now','-7 days')"
	}

	query := fmt.Sprintf(`
SELECT id, title, location, job_url, platform, org_name, org_country, ai_score, recommendation, first_seen, scored_date
FROM jobs
%s
ORDER BY %s %s
LIMIT ?;
`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var firstSeenStr string
		if err := rows.Scan(
			&j.ID,
			&j.Title,
			&j.Location,
			&j.URL,
			&j.Platform,
			&j.Org,
			&j.OrgCountry,
			&j.Score,
			&j.Recommendation,
			&firstSeenStr,
			&j.ScoredDate,
		); err != nil {
			return nil, err
		}
		if t, e := time.Parse(time.RFC3339, firstSeenStr); e == nil {
			j.FirstSeen = t.Format("2006-01-02 15:04:05")
		} else {
			j.FirstSeen = firstSeenStr
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func CleanupOldJobs(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM jobs
WHERE last_seen < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
