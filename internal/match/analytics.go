package match

import (
	"encoding/json"
	"os"

	"accelscout/internal/domain"
)

// Analytics summarizes one scoring run for the matching_analytics.json
// report the alert email links against.
type Analytics struct {
	Date         string         `json:"date"`
	JobsScored   int            `json:"jobs_scored"`
	AverageScore float64        `json:"average_score"`
	HighMatches  int            `json:"high_matches"`
	Models       map[string]int `json:"models"`
	AICalls      int            `json:"ai_calls"`
	AICost       float64        `json:"ai_cost_estimate"`
}

func buildAnalytics(jobs []domain.ScoredJob, tracker *costTracker) Analytics {
	a := Analytics{
		Date:   today(),
		Models: map[string]int{},
	}
	if tracker != nil {
		a.AICalls = tracker.Calls
		a.AICost = tracker.Cost
	}

	var sum float64
	for _, j := range jobs {
		a.JobsScored++
		sum += j.AIScore
		if j.AIScore >= 7 {
			a.HighMatches++
		}
		a.Models[j.ModelUsed]++
	}
	if a.JobsScored > 0 {
		a.AverageScore = sum / float64(a.JobsScored)
	}
	return a
}

func writeAnalytics(path string, a Analytics) error {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
