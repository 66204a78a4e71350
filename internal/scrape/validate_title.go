package scrape

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"accelscout/internal/scrape/util"
)

// Noise shapes that disqualify a string outright. Matched against the
// lowercased trimmed title, except personName which needs the original
// capitalization to mean anything.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(apply now|read more|careers|news|latest|about|contact)$`),
	regexp.MustCompile(`^(the|a|an) [^,]+$`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^(home|about us|contact|privacy|terms)$`),
	regexp.MustCompile(`^(program|accelerator|incubator|apply|application)$`),
	regexp.MustCompile(`^[^a-zA-Z]*$`),
}

// Two capitalized words and nothing else reads as a person's name, not a
// role. This deliberately also rejects bare titles like "Software Engineer";
// team pages full of names are the far more common case on accelerator
// sites, and real listings almost always carry seniority or specialty words.
var personName = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

// Accelerator sites talk about their funding programs in job-shaped phrases.
// Any of these words signals program copy, not an opening.
var programVocabulary = []string{
	"apply now", "application", "program", "accelerator", "cohort",
	"deadline", "batch", "startup", "entrepreneur", "founder",
}

// A title must contain at least one of these to count as a job. Substring
// match over the lowercased, diacritic-folded title.
var roleKeywords = []string{
	"engineer", "developer", "manager", "director", "lead", "analyst",
	"specialist", "coordinator", "intern", "associate", "officer",
	"consultant", "advisor", "head of", "chief",
	"founder", // unreachable: the program-vocabulary check rejects it first
	"partner", "scientist", "researcher", "designer", "architect",
	"product", "marketing", "sales", "business development", "operations",
	"finance", "legal", "hr", "human resources", "strategy",
}

// IsValidTitle decides whether an extracted string is a genuine job title.
// Pure function; both extractors and nothing else call it.
func IsValidTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if utf8.RuneCountInString(trimmed) < 3 {
		return false
	}

	if personName.MatchString(trimmed) {
		return false
	}

	low := strings.ToLower(trimmed)
	for _, p := range noisePatterns {
		if p.MatchString(low) {
			return false
		}
	}

	folded := strings.ToLower(util.FoldDiacritics(trimmed))
	for _, word := range programVocabulary {
		if strings.Contains(folded, word) {
			return false
		}
	}

	hasRole := false
	for _, kw := range roleKeywords {
		if strings.Contains(folded, kw) {
			hasRole = true
			break
		}
	}
	if !hasRole {
		return false
	}

	n := utf8.RuneCountInString(trimmed)
	return n >= 5 && n <= 150
}
