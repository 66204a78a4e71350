package match

import (
	"context"
	"strings"

	"accelscout/internal/domain"
)

// FallbackScorer is the no-API scorer: keyword overlap against the profile,
// additive from a neutral base. It runs whenever Gemini is unavailable or
// the daily cost budget is spent.
type FallbackScorer struct{}

func (FallbackScorer) Score(_ context.Context, job domain.JobPosting, p Profile) (Result, error) {
	text := strings.ToLower(job.Title + " " + job.OrgFocus + " " + job.Location)

	score := 5.0
	var factors []string
	var flags []string

	for _, role := range p.TargetRoles {
		if strings.Contains(text, strings.ToLower(role)) {
			score += 2
			factors = append(factors, "target role: "+role)
			break
		}
	}

	skillHits := 0
	for _, skill := range p.Skills {
		if strings.Contains(text, strings.ToLower(skill)) {
			skillHits++
			factors = append(factors, "skill: "+skill)
		}
	}
	if skillHits > 4 {
		skillHits = 4
	}
	score += 0.5 * float64(skillHits)

	loc := strings.ToLower(job.Location)
	for _, pref := range p.PreferredLocations {
		if strings.Contains(loc, strings.ToLower(pref)) {
			score++
			factors = append(factors, "location: "+pref)
			break
		}
	}

	for _, db := range p.DealBreakers {
		if strings.Contains(text, strings.ToLower(db)) {
			score -= 3
			flags = append(flags, db)
		}
	}

	score = clampScore(score)

	return Result{
		Score:          score,
		Reasoning:      "Keyword overlap with profile (no AI call)",
		MatchFactors:   strings.Join(uniq(factors), ", "),
		Confidence:     "Low",
		Recommendation: recommendationFor(score),
		RedFlags:       strings.Join(flags, ", "),
		Model:          "fallback",
	}, nil
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
