package scrape

import (
	"accelscout/internal/domain"
	"accelscout/internal/scrape/util"
)

type dedupeKey struct {
	title  string
	domain string
}

// Dedupe collapses near-duplicate postings across the whole run. The key is
// the title reduced to bare alphanumerics plus the job URL's host: punctuation
// variants of one role on one domain are duplicates, while identical wording
// at two different companies is two real jobs. First occurrence wins.
func Dedupe(postings []domain.JobPosting) []domain.JobPosting {
	seen := make(map[dedupeKey]bool, len(postings))
	out := make([]domain.JobPosting, 0, len(postings))

	for _, p := range postings {
		k := dedupeKey{
			title:  util.TitleKey(p.Title),
			domain: util.HostOf(p.JobURL),
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
