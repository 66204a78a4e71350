package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"accelscout/internal/domain"
	"accelscout/internal/scrape/util"
)

const (
	structuredCap   = 10
	defaultLocation = "Remote/Unknown"
)

// ExtractStructured pulls candidates through the detected platform's listing
// selector. Only the first structuredCap matches are inspected; runaway
// boards with hundreds of rows cost the same as small ones.
func ExtractStructured(doc *goquery.Document, baseURL string, platform Platform) []domain.Candidate {
	rule, ok := ruleFor(platform)
	if !ok {
		return nil
	}

	var out []domain.Candidate
	doc.Find(rule.selector).EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= structuredCap {
			return false
		}

		title := util.CleanText(el.Text())
		if !IsValidTitle(title) {
			return true
		}

		href, ok := el.Attr("href")
		if !ok || href == "" {
			href, _ = el.Find("a[href]").First().Attr("href")
		}
		jobURL := baseURL
		if href != "" {
			if abs := util.ResolveRef(baseURL, href); abs != "" {
				jobURL = abs
			}
		}

		location := util.LocationNear(el)
		if location == "" {
			location = defaultLocation
		}

		out = append(out, domain.Candidate{Title: title, URL: jobURL, Location: location})
		return true
	})
	return out
}
