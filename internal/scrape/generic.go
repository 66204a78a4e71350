package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"accelscout/internal/domain"
	"accelscout/internal/scrape/util"
)

const genericCap = 5

var genericContainerClass = regexp.MustCompile(`(?i)job|career|position|opening`)

var genericHrefHints = []string{"/careers", "/jobs", "/opportunities"}

// ExtractGeneric is the fallback for pages no ATS rule claimed. Pass 1 scans
// containers whose class hints at job listings; pass 2, only when pass 1
// finds nothing, falls back to careers-ish hrefs anywhere in the document.
// Lower precision than the structured path, so the cap is tighter.
func ExtractGeneric(doc *goquery.Document, baseURL string) []domain.Candidate {
	var found []domain.Candidate

	doc.Find("div, section, ul").Each(func(_ int, sec *goquery.Selection) {
		cls, ok := sec.Attr("class")
		if !ok || !genericContainerClass.MatchString(cls) {
			return
		}
		sec.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			if c, ok := candidateFromAnchor(a, baseURL); ok {
				found = append(found, c)
			}
		})
	})

	if len(found) == 0 {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			low := strings.ToLower(href)
			hinted := false
			for _, h := range genericHrefHints {
				if strings.Contains(low, h) {
					hinted = true
					break
				}
			}
			if !hinted {
				return
			}
			if c, ok := candidateFromAnchor(a, baseURL); ok {
				found = append(found, c)
			}
		})
	}

	// Page-local dedupe by title; nested containers surface the same anchor
	// more than once.
	seen := map[string]bool{}
	var out []domain.Candidate
	for _, c := range found {
		k := strings.ToLower(c.Title)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
		if len(out) == genericCap {
			break
		}
	}
	return out
}

func candidateFromAnchor(a *goquery.Selection, baseURL string) (domain.Candidate, bool) {
	title := util.CleanText(a.Text())
	if !IsValidTitle(title) {
		return domain.Candidate{}, false
	}

	href, _ := a.Attr("href")
	jobURL := baseURL
	if abs := util.ResolveRef(baseURL, href); abs != "" {
		jobURL = abs
	}

	return domain.Candidate{Title: title, URL: jobURL, Location: defaultLocation}, true
}
