package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Result is one scoring verdict, whoever produced it.
type Result struct {
	Score          float64
	Reasoning      string
	MatchFactors   string
	Confidence     string
	Recommendation string
	RedFlags       string
	Model          string
}

var (
	scoreRe   = regexp.MustCompile(`(?im)^\s*SCORE:\s*([0-9]+(?:\.[0-9]+)?)`)
	reasonRe  = regexp.MustCompile(`(?im)^\s*REASONING:\s*(.+)$`)
	factorsRe = regexp.MustCompile(`(?im)^\s*MATCH_FACTORS:\s*(.+)$`)
	confRe    = regexp.MustCompile(`(?im)^\s*CONFIDENCE:\s*(high|medium|low)`)
	recRe     = regexp.MustCompile(`(?im)^\s*RECOMMENDATION:\s*(.+)$`)
	flagsRe   = regexp.MustCompile(`(?im)^\s*RED_FLAGS:\s*(.+)$`)
)

// parseResult pulls the labeled fields out of a model response. Models
// drift from the requested format, so every field has a safe default and
// the score clamps onto the 0-10 scale.
func parseResult(text string) Result {
	r := Result{
		Score:      5.0,
		Confidence: "Low",
	}

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			r.Score = clampScore(v)
		}
	}
	if m := reasonRe.FindStringSubmatch(text); m != nil {
		r.Reasoning = strings.TrimSpace(m[1])
	}
	if m := factorsRe.FindStringSubmatch(text); m != nil {
		r.MatchFactors = strings.TrimSpace(m[1])
	}
	if m := confRe.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "high":
			r.Confidence = "High"
		case "medium":
			r.Confidence = "Medium"
		case "low":
			r.Confidence = "Low"
		}
	}
	if m := recRe.FindStringSubmatch(text); m != nil {
		r.Recommendation = strings.ToLower(strings.TrimSpace(m[1]))
	}
	if m := flagsRe.FindStringSubmatch(text); m != nil {
		flags := strings.TrimSpace(m[1])
		if !strings.EqualFold(flags, "none") {
			r.RedFlags = flags
		}
	}

	if r.Recommendation == "" {
		r.Recommendation = recommendationFor(r.Score)
	}
	return r
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func recommendationFor(score float64) string {
	switch {
	case score >= 8:
		return "strong match"
	case score >= 6:
		return "good match"
	case score >= 4:
		return "fair match"
	default:
		return "poor match"
	}
}
