package csvio

import (
	"os"
	"path/filepath"
	"strconv"

	"accelscout/internal/domain"
)

// jobsHeader is the raw-jobs contract consumed by the match stage. Order is
// fixed; snippet mirrors title because nothing richer is extracted.
var jobsHeader = []string{
	"title", "location", "job_url", "snippet", "platform",
	"accelerator_name", "accelerator_website", "accelerator_country",
	"accelerator_focus", "discovered_date", "source_url",
}

var scoredHeader = append(append([]string(nil), jobsHeader...),
	"ai_score", "ai_reasoning", "match_factors", "confidence",
	"recommendation", "red_flags", "scored_date", "model_used",
)

// WriteJobs overwrites the raw jobs file with this run's postings. Previous
// contents are gone afterwards; each run fully supersedes the last.
func WriteJobs(path string, postings []domain.JobPosting) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	rows := make([][]string, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, []string{
			p.Title, p.Location, p.JobURL, p.Title, p.Platform,
			p.OrgName, p.OrgWebsite, p.OrgCountry, p.OrgFocus,
			p.DiscoveredDate, p.SourceURL,
		})
	}

	tmp := path + ".tmp"
	if err := writeCSV(tmp, jobsHeader, rows); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadJobs loads the raw jobs file back for scoring.
func ReadJobs(path string) ([]domain.JobPosting, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	out := make([]domain.JobPosting, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, domain.JobPosting{
			Title:          t.Get(row, "title"),
			Location:       t.Get(row, "location"),
			JobURL:         t.Get(row, "job_url"),
			Platform:       t.Get(row, "platform"),
			OrgName:        t.Get(row, "accelerator_name"),
			OrgWebsite:     t.Get(row, "accelerator_website"),
			OrgCountry:     t.Get(row, "accelerator_country"),
			OrgFocus:       t.Get(row, "accelerator_focus"),
			DiscoveredDate: t.Get(row, "discovered_date"),
			SourceURL:      t.Get(row, "source_url"),
		})
	}
	return out, nil
}

// WriteScoredJobs overwrites the scored jobs file.
func WriteScoredJobs(path string, jobs []domain.ScoredJob) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			j.Title, j.Location, j.JobURL, j.Title, j.Platform,
			j.OrgName, j.OrgWebsite, j.OrgCountry, j.OrgFocus,
			j.DiscoveredDate, j.SourceURL,
			strconv.FormatFloat(j.AIScore, 'f', 1, 64),
			j.AIReasoning, j.MatchFactors, j.Confidence,
			j.Recommendation, j.RedFlags, j.ScoredDate, j.ModelUsed,
		})
	}

	tmp := path + ".tmp"
	if err := writeCSV(tmp, scoredHeader, rows); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadScoredJobs loads the scored jobs file for the alert stage.
func ReadScoredJobs(path string) ([]domain.ScoredJob, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ScoredJob, 0, len(t.Rows))
	for _, row := range t.Rows {
		score, _ := strconv.ParseFloat(t.Get(row, "ai_score"), 64)
		out = append(out, domain.ScoredJob{
			JobPosting: domain.JobPosting{
				Title:          t.Get(row, "title"),
				Location:       t.Get(row, "location"),
				JobURL:         t.Get(row, "job_url"),
				Platform:       t.Get(row, "platform"),
				OrgName:        t.Get(row, "accelerator_name"),
				OrgWebsite:     t.Get(row, "accelerator_website"),
				OrgCountry:     t.Get(row, "accelerator_country"),
				OrgFocus:       t.Get(row, "accelerator_focus"),
				DiscoveredDate: t.Get(row, "discovered_date"),
				SourceURL:      t.Get(row, "source_url"),
			},
			AIScore:        score,
			AIReasoning:    t.Get(row, "ai_reasoning"),
			MatchFactors:   t.Get(row, "match_factors"),
			Confidence:     t.Get(row, "confidence"),
			Recommendation: t.Get(row, "recommendation"),
			RedFlags:       t.Get(row, "red_flags"),
			ScoredDate:     t.Get(row, "scored_date"),
			ModelUsed:      t.Get(row, "model_used"),
		})
	}
	return out, nil
}
