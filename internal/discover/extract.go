package discover

import (
	"net/url"
	"strings"
	"unicode"

	"accelscout/internal/scrape/util"
)

// skipDomains are aggregators and social sites whose results are never the
// accelerator's own website.
var skipDomains = []string{
	"linkedin.com", "facebook.com", "twitter.com", "x.com",
	"instagram.com", "youtube.com", "wikipedia.org",
	"crunchbase.com", "glassdoor.com", "indeed.com", "medium.com",
}

var countryHints = []struct {
	hint    string
	country string
}{
	{"united states", "United States"},
	{"silicon valley", "United States"},
	{"new york", "United States"},
	{"united kingdom", "United Kingdom"},
	{"london", "United Kingdom"},
	{"germany", "Germany"},
	{"berlin", "Germany"},
	{"munich", "Germany"},
	{"france", "France"},
	{"paris", "France"},
	{"netherlands", "Netherlands"},
	{"amsterdam", "Netherlands"},
	{"sweden", "Sweden"},
	{"stockholm", "Sweden"},
	{"switzerland", "Switzerland"},
	{"spain", "Spain"},
	{"singapore", "Singapore"},
	{"india", "India"},
	{"canada", "Canada"},
	{"brazil", "Brazil"},
}

type candidate struct {
	Name    string
	Website string
	Country string
	Focus   string
}

// candidateFromHit turns a search result into a directory candidate, or
// reports false for results that cannot be an accelerator's own site.
func candidateFromHit(hit SearchHit) (candidate, bool) {
	u, err := url.Parse(strings.TrimSpace(hit.Link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return candidate{}, false
	}

	host := strings.ToLower(u.Host)
	for _, d := range skipDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return candidate{}, false
		}
	}

	name := nameFromTitle(hit.Title)
	if name == "" {
		name = strings.TrimPrefix(host, "www.")
	}

	text := strings.ToLower(hit.Title + " " + hit.Snippet)
	return candidate{
		Name:    name,
		Website: u.Scheme + "://" + u.Host,
		Country: countryFor(text),
		Focus:   focusFor(text),
	}, true
}

// nameFromTitle keeps everything before the first title separator, which is
// where sites append taglines.
func nameFromTitle(title string) string {
	t := util.CleanText(title)
	for _, sep := range []string{" - ", " | "} {
		if i := strings.Index(t, sep); i > 0 {
			t = t[:i]
			break
		}
	}
	return strings.TrimSpace(t)
}

func countryFor(text string) string {
	for _, h := range countryHints {
		if matchHint(text, h.hint) {
			return h.country
		}
	}
	return "Unknown"
}

func focusFor(text string) string {
	var tags []string
	for _, f := range focusOrder {
		for _, kw := range focusAreas[f] {
			if matchHint(text, kw) {
				tags = append(tags, f)
				break
			}
		}
	}
	if len(tags) == 0 {
		return "general"
	}
	return strings.Join(tags, ";")
}

// matchHint does substring matching for phrases and longer terms, but exact
// word matching for short ones so "ai" never fires inside "chain" or "paris"
// inside "comparison".
func matchHint(text, hint string) bool {
	if strings.Contains(hint, " ") || len(hint) > 6 {
		return strings.Contains(text, hint)
	}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if w == hint {
			return true
		}
	}
	return false
}
