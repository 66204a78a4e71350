package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"accelscout/internal/metrics"
	"accelscout/internal/scrape/util"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; JobTracker/1.0)"

// Page is one fetched careers page. URL is the final URL after redirects so
// relative hrefs resolve against the page that actually rendered.
type Page struct {
	URL        string
	Body       string
	StatusCode int
}

// Fetcher performs single-shot GETs against accelerator sites. No retries:
// a failed fetch costs that org its postings for the run, nothing more.
type Fetcher struct {
	hc      *http.Client
	ua      string
	limiter *util.HostLimiter
}

func NewFetcher(timeout time.Duration, ua string, limiter *util.HostLimiter) *Fetcher {
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Fetcher{
		hc:      &http.Client{Timeout: timeout},
		ua:      ua,
		limiter: limiter,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, rawURL); err != nil {
			return Page{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.ua)

	start := time.Now()
	res, err := f.hc.Do(req)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return Page{}, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Page{}, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", rawURL, err)
	}

	finalURL := rawURL
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}

	return Page{URL: finalURL, Body: string(body), StatusCode: res.StatusCode}, nil
}
