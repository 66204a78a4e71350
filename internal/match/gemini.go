package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"accelscout/internal/domain"
)

// Scorer rates one posting against a profile.
type Scorer interface {
	Score(ctx context.Context, job domain.JobPosting, p Profile) (Result, error)
}

// GeminiScorer asks a Gemini model for the verdict.
type GeminiScorer struct {
	client *genai.Client
	model  string
}

func NewGeminiScorer(ctx context.Context, apiKey, model string) (*GeminiScorer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiScorer{client: client, model: model}, nil
}

func (g *GeminiScorer) Close() error { return g.client.Close() }

func (g *GeminiScorer) Score(ctx context.Context, job domain.JobPosting, p Profile) (Result, error) {
	model := g.client.GenerativeModel(g.model)
	// Low temperature keeps the scores comparable across a run.
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(job, p)))
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}

	text := textFromResponse(resp)
	if text == "" {
		return Result{}, errors.New("empty model response")
	}

	r := parseResult(text)
	r.Model = g.model
	return r, nil
}

func textFromResponse(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func buildPrompt(job domain.JobPosting, p Profile) string {
	var b strings.Builder

	b.WriteString("You score how well a startup job posting fits a candidate, 0-10.\n\n")

	b.WriteString("CANDIDATE PROFILE:\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Summary: %s\n", p.Summary)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	fmt.Fprintf(&b, "Target roles: %s\n", strings.Join(p.TargetRoles, ", "))
	fmt.Fprintf(&b, "Preferred locations: %s\n", strings.Join(p.PreferredLocations, ", "))
	if p.MinExperienceYears > 0 {
		fmt.Fprintf(&b, "Experience: %d+ years\n", p.MinExperienceYears)
	}
	if len(p.DealBreakers) > 0 {
		fmt.Fprintf(&b, "Deal breakers: %s\n", strings.Join(p.DealBreakers, ", "))
	}

	b.WriteString("\nJOB POSTING:\n")
	fmt.Fprintf(&b, "Title: %s\n", job.Title)
	fmt.Fprintf(&b, "Organization: %s (%s, focus: %s)\n", job.OrgName, job.OrgCountry, job.OrgFocus)
	fmt.Fprintf(&b, "Location: %s\n", job.Location)
	fmt.Fprintf(&b, "URL: %s\n", job.JobURL)

	b.WriteString(`
Respond in exactly this format:
SCORE: <number 0-10>
REASONING: <one or two sentences>
MATCH_FACTORS: <comma-separated factors>
CONFIDENCE: <High|Medium|Low>
RECOMMENDATION: <strong match|good match|fair match|poor match|avoid>
RED_FLAGS: <comma-separated, or none>
`)

	return b.String()
}
