// Package match turns raw postings into scored ones. Gemini does the real
// scoring; a keyword fallback keeps the pipeline moving when the API or the
// daily budget is gone.
package match

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/domain"
	"accelscout/internal/metrics"
)

// ScoreNewJobs scores every posting in the raw jobs file and overwrites the
// scored jobs file. Postings already scored today carry their verdict over
// instead of re-spending budget. ai may be nil; everything then goes
// through the fallback scorer.
func ScoreNewJobs(ctx context.Context, cfg config.Config, ai Scorer, dataDir string) (int, error) {
	rawPath := filepath.Join(dataDir, "jobs_raw.csv")
	scoredPath := filepath.Join(dataDir, "jobs_scored.csv")

	jobs, err := csvio.ReadJobs(rawPath)
	if err != nil {
		return 0, fmt.Errorf("read raw jobs %s: %w", rawPath, err)
	}

	profilePath := cfg.Match.ProfilePath
	if profilePath == "" {
		profilePath = "profile.json"
	}
	if !filepath.IsAbs(profilePath) {
		profilePath = filepath.Join(dataDir, profilePath)
	}
	profile, err := LoadProfile(profilePath)
	if err != nil {
		return 0, err
	}

	prior := map[string]domain.ScoredJob{}
	if existing, err := csvio.ReadScoredJobs(scoredPath); err == nil {
		for _, j := range existing {
			if j.ScoredDate == today() {
				prior[j.JobURL] = j
			}
		}
	}

	tracker := loadCostTracker(filepath.Join(dataDir, "ai_costs.json"), cfg.Match.DailyCostLimit)
	log.Printf("[match] %d postings to score, ai spend today $%.3f of $%.2f",
		len(jobs), tracker.Cost, tracker.limit)

	pause := time.Duration(cfg.Match.PauseSeconds) * time.Second
	fallback := FallbackScorer{}

	var out []domain.ScoredJob
	scored := 0

	for _, job := range jobs {
		if ctx.Err() != nil {
			log.Printf("[match] run cut short: %v", ctx.Err())
			break
		}

		if prev, ok := prior[job.JobURL]; ok {
			out = append(out, prev)
			continue
		}

		var res Result
		usedAI := false
		if ai != nil && tracker.allow() {
			res, err = ai.Score(ctx, job, profile)
			if err != nil {
				log.Printf("[match] %s: %v (falling back)", job.Title, err)
			} else {
				usedAI = true
				tracker.record()
			}
		}
		if !usedAI {
			res, _ = fallback.Score(ctx, job, profile)
		}

		out = append(out, domain.ScoredJob{
			JobPosting:     job,
			AIScore:        res.Score,
			AIReasoning:    res.Reasoning,
			MatchFactors:   res.MatchFactors,
			Confidence:     res.Confidence,
			Recommendation: res.Recommendation,
			RedFlags:       res.RedFlags,
			ScoredDate:     today(),
			ModelUsed:      res.Model,
		})
		scored++
		metrics.JobsScored.WithLabelValues(res.Model).Inc()

		if usedAI && pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}
	}

	if err := csvio.WriteScoredJobs(scoredPath, out); err != nil {
		return 0, fmt.Errorf("write scored jobs %s: %w", scoredPath, err)
	}
	if err := tracker.save(); err != nil {
		log.Printf("[match] save cost tracker: %v", err)
	}
	if err := writeAnalytics(filepath.Join(dataDir, "matching_analytics.json"), buildAnalytics(out, tracker)); err != nil {
		log.Printf("[match] write analytics: %v", err)
	}

	log.Printf("[match] scored %d new, carried over %d", scored, len(out)-scored)
	return scored, nil
}
