package domain

// ScoredJob is a raw posting plus the match stage's assessment.
type ScoredJob struct {
	JobPosting
	AIScore        float64
	AIReasoning    string
	MatchFactors   string
	Confidence     string // High/Medium/Low
	Recommendation string // strong match/good match/consider/poor match/avoid
	RedFlags       string
	ScoredDate     string // 2006-01-02
	ModelUsed      string
}
