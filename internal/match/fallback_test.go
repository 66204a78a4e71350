package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelscout/internal/domain"
)

func TestFallbackScorer_NeutralJobStaysAtBase(t *testing.T) {
	res, err := FallbackScorer{}.Score(context.Background(), domain.JobPosting{
		Title:    "Office Coordinator",
		Location: "Lagos",
	}, Profile{
		Skills:      []string{"solidity"},
		TargetRoles: []string{"engineer"},
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Score)
	assert.Equal(t, "fair match", res.Recommendation)
	assert.Equal(t, "Low", res.Confidence)
	assert.Equal(t, "fallback", res.Model)
	assert.Empty(t, res.MatchFactors)
}

func TestFallbackScorer_StacksRoleSkillAndLocation(t *testing.T) {
	p := Profile{
		TargetRoles:        []string{"engineer"},
		Skills:             []string{"go", "python", "sql", "docker", "kubernetes"},
		PreferredLocations: []string{"remote"},
	}
	job := domain.JobPosting{
		Title:    "Senior Engineer (Go, Python, SQL, Docker, Kubernetes)",
		Location: "Remote",
	}

	res, err := FallbackScorer{}.Score(context.Background(), job, p)
	require.NoError(t, err)

	// base 5 + role 2 + skills capped at 4 hits (2.0) + location 1, clamped.
	assert.Equal(t, 10.0, res.Score)
	assert.Equal(t, "strong match", res.Recommendation)
	assert.Contains(t, res.MatchFactors, "target role: engineer")
	assert.Contains(t, res.MatchFactors, "location: remote")
}

func TestFallbackScorer_DealBreakerDragsScoreDown(t *testing.T) {
	res, err := FallbackScorer{}.Score(context.Background(), domain.JobPosting{
		Title: "Unpaid Marketing Intern",
	}, Profile{
		DealBreakers: []string{"unpaid"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, res.Score)
	assert.Equal(t, "poor match", res.Recommendation)
	assert.Equal(t, "unpaid", res.RedFlags)
}

func TestFallbackScorer_OnlyFirstRoleMatchCounts(t *testing.T) {
	p := Profile{TargetRoles: []string{"engineer", "developer"}}
	res, err := FallbackScorer{}.Score(context.Background(), domain.JobPosting{
		Title: "Engineer / Developer",
	}, p)
	require.NoError(t, err)

	assert.Equal(t, 7.0, res.Score, "role bonus applies once even when several roles match")
}
