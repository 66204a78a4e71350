// Package validate health-checks every directory row and rewrites the file
// with fresh activity scores, statuses, and scrape priorities. It is the
// stage that promotes discovered organizations into scrapeable ones and
// demotes dead ones.
package validate

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/domain"
	"accelscout/internal/metrics"
)

const (
	slowResponse = 5 * time.Second
	fastResponse = 3 * time.Second
)

// validationCols grow the directory schema in place on first run.
var validationCols = []string{
	"Activity_Score", "Last_Validated", "Validation_Notes",
	"Website_Accessible", "Response_Time", "Careers_Accessible",
	"Has_Jobs", "Job_Count_Estimate", "Job_Platforms",
	csvio.ColCareersURL, csvio.ColStatus, csvio.ColPriority,
}

// scoreOf turns probe results into the 0-10 activity score.
func scoreOf(r checkResult) int {
	if !r.WebsiteUp {
		return 0
	}

	score := 1
	if r.ResponseTime <= slowResponse {
		score = 2
	}
	if r.ResponseTime < fastResponse {
		score++
	}
	if r.CareersUp {
		score++
	}
	if r.HasJobs {
		score++
	}
	switch {
	case r.JobCount >= 5:
		score += 3
	case r.JobCount >= 2:
		score += 2
	case r.JobCount > 0:
		score++
	}
	if n := len(r.Platforms); n > 2 {
		score += 2
	} else {
		score += n
	}
	return score
}

// statusFor maps a probe outcome to directory status and scrape priority.
func statusFor(r checkResult, score int) (status, priority string) {
	switch {
	case !r.WebsiteUp:
		return "error", "low"
	case score >= 7:
		return "active", "high"
	case score >= 4:
		return "monitor", "medium"
	default:
		return "inactive", "low"
	}
}

// ValidateAccelerators checks every row with a website and writes the
// updated directory back atomically. Individual org failures are recorded
// in the row, never fatal. Returns how many rows were checked.
func ValidateAccelerators(ctx context.Context, cfg config.Config, directoryPath string) (int, error) {
	tbl, err := csvio.ReadTable(directoryPath)
	if err != nil {
		return 0, fmt.Errorf("read directory %s: %w", directoryPath, err)
	}
	tbl.EnsureCols(validationCols...)

	checker := NewChecker(cfg.Scrape.UserAgent)
	pause := time.Duration(cfg.Validate.PauseSeconds) * time.Second
	today := time.Now().Format("2006-01-02")

	checked := 0
	for i, row := range tbl.Rows {
		website := strings.TrimSpace(tbl.Get(row, csvio.ColWebsite))
		if website == "" {
			continue
		}
		name := tbl.Get(row, csvio.ColName)

		if ctx.Err() != nil {
			log.Printf("[validate] run cut short: %v", ctx.Err())
			break
		}

		r := checker.Check(ctx, domain.Organization{
			Name:       name,
			Website:    website,
			CareersURL: tbl.Get(row, csvio.ColCareersURL),
		})

		score := scoreOf(r)
		status, priority := statusFor(r, score)

		tbl.Set(row, "Activity_Score", strconv.Itoa(score))
		tbl.Set(row, "Last_Validated", today)
		tbl.Set(row, "Validation_Notes", r.Note)
		tbl.Set(row, "Website_Accessible", strconv.FormatBool(r.WebsiteUp))
		tbl.Set(row, "Response_Time", strconv.FormatFloat(r.ResponseTime.Seconds(), 'f', 2, 64))
		tbl.Set(row, "Careers_Accessible", strconv.FormatBool(r.CareersUp))
		tbl.Set(row, "Has_Jobs", strconv.FormatBool(r.HasJobs))
		tbl.Set(row, "Job_Count_Estimate", strconv.Itoa(r.JobCount))
		tbl.Set(row, "Job_Platforms", strings.Join(r.Platforms, ";"))
		tbl.Set(row, csvio.ColStatus, status)
		tbl.Set(row, csvio.ColPriority, priority)
		if r.CareersURL != "" {
			tbl.Set(row, csvio.ColCareersURL, r.CareersURL)
		}

		checked++
		metrics.OrgsValidated.Inc()
		log.Printf("[validate] %s: score %d -> %s/%s", name, score, status, priority)

		if i < len(tbl.Rows)-1 && pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}
	}

	if err := csvio.WriteTableAtomic(directoryPath, tbl); err != nil {
		return 0, fmt.Errorf("write directory %s: %w", directoryPath, err)
	}
	log.Printf("[validate] checked %d organizations", checked)
	return checked, nil
}
