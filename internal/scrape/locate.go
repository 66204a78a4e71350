package scrape

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"accelscout/internal/scrape/util"
)

// careersLink matches careers-ish hrefs and anchor text. RE2 has no
// lookahead, so the ($|[^.\w]) guard stands in for the usual (?!\.): it
// rejects bare domain hits like careers.io while still matching /careers,
// /careers/ and trailing "Careers" text.
var careersLink = regexp.MustCompile(`(?i)(careers?|jobs?)($|[^.\w])|work.with.us|join.us|opportunities`)

// Locator discovers the real careers page under an organization's root URL.
// Best-effort by contract: every failure path returns the root unchanged.
type Locator struct {
	fetcher *Fetcher
	timeout time.Duration
}

func NewLocator(f *Fetcher, timeout time.Duration) *Locator {
	return &Locator{fetcher: f, timeout: timeout}
}

// Locate fetches the root page and returns the first same-host anchor whose
// href or text looks like a careers link. Cross-domain anchors are skipped,
// otherwise one "our jobs on LinkedIn" footer link would hijack the whole
// org onto a third-party board.
func (l *Locator) Locate(ctx context.Context, rootURL string) string {
	lctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	page, err := l.fetcher.Fetch(lctx, rootURL)
	if err != nil {
		return rootURL
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return rootURL
	}

	found := rootURL
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		text := util.CleanText(a.Text())
		if !careersLink.MatchString(href) && !careersLink.MatchString(text) {
			return true
		}

		abs := util.ResolveRef(page.URL, href)
		if abs == "" || !util.SameHost(abs, rootURL) {
			return true
		}

		found = abs
		return false
	})
	return found
}
