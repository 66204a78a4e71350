package discover

import (
	"context"
	"net/http"
	"strings"
	"time"
)

var careersPaths = []string{"/careers", "/jobs", "/career", "/work-with-us", "/join-us"}

// Prober checks which of the common careers paths respond on a site. The
// validation stage swaps in its longer path list.
type Prober struct {
	hc    *http.Client
	ua    string
	paths []string
}

func NewProber(ua string, paths ...string) *Prober {
	if len(paths) == 0 {
		paths = careersPaths
	}
	return &Prober{
		hc: &http.Client{
			Timeout: 5 * time.Second,
			// A redirect answer counts as a hit; never follow it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		ua:    ua,
		paths: paths,
	}
}

// FindCareersURL HEADs the usual careers paths in order and returns the
// first that answers 2xx or 3xx, or "" when none do.
func (p *Prober) FindCareersURL(ctx context.Context, website string) string {
	base := strings.TrimRight(strings.TrimSpace(website), "/")
	if base == "" {
		return ""
	}

	for _, path := range p.paths {
		target := base + path
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", p.ua)

		res, err := p.hc.Do(req)
		if err != nil {
			continue
		}
		res.Body.Close()

		if res.StatusCode >= 200 && res.StatusCode < 400 {
			return target
		}
	}
	return ""
}
