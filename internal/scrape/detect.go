package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Platform identifies which ATS rendered a careers page. The set is closed:
// adding a platform means adding a rule below, nothing is discovered
// dynamically.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformGeneric    Platform = "generic"
	PlatformNone       Platform = ""
)

type platformRule struct {
	platform     Platform
	fingerprints []string
	selector     string
}

// Priority order: first rule whose fingerprint AND selector both hit wins.
var platformRules = []platformRule{
	{
		platform:     PlatformGreenhouse,
		fingerprints: []string{"greenhouse.io", "boards.greenhouse.io"},
		selector:     ".opening a, [data-job]",
	},
	{
		platform:     PlatformLever,
		fingerprints: []string{"lever.co", "jobs.lever.co"},
		selector:     `.posting-title a, [data-qa="posting-title"]`,
	},
	{
		platform:     PlatformWorkday,
		fingerprints: []string{"workday.com"},
		selector:     `[data-automation-id="jobPostingTitle"] a`,
	},
}

func ruleFor(p Platform) (platformRule, bool) {
	for _, r := range platformRules {
		if r.platform == p {
			return r, true
		}
	}
	return platformRule{}, false
}

// Detect classifies a fetched page. A fingerprint alone is not enough: the
// page must also contain at least one element matching the platform's
// listing selector, so a "Powered by Greenhouse" footer credit on an
// otherwise generic page stays generic.
func Detect(doc *goquery.Document, markup, pageURL string) Platform {
	lowMarkup := strings.ToLower(markup)
	lowURL := strings.ToLower(pageURL)

	for _, rule := range platformRules {
		hit := false
		for _, fp := range rule.fingerprints {
			if strings.Contains(lowURL, fp) || strings.Contains(lowMarkup, fp) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		if doc.Find(rule.selector).Length() > 0 {
			return rule.platform
		}
	}
	return PlatformNone
}
