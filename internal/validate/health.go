package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"accelscout/internal/discover"
	"accelscout/internal/domain"
)

// probePaths is the long careers-path list. Validation probes more paths
// than discovery because a known org is worth the extra requests.
var probePaths = []string{
	"/careers", "/jobs", "/career", "/work-with-us", "/join-us",
	"/open-positions", "/opportunities", "/hiring", "/team/join",
}

// jobIndicators are role words whose presence on a careers page suggests
// actual openings rather than a brochure.
var jobIndicators = []string{
	"engineer", "developer", "designer", "manager", "analyst",
	"marketing", "sales", "operations", "product", "apply now",
	"open position", "we're hiring", "we are hiring", "join our team",
}

// atsIndicators map markup substrings to the job platform they betray.
var atsIndicators = []struct {
	needle   string
	platform string
}{
	{"greenhouse", "greenhouse"},
	{"lever.co", "lever"},
	{"workday", "workday"},
	{"bamboohr", "bamboohr"},
	{"linkedin.com/jobs", "linkedin"},
	{"indeed.com", "indeed"},
	{"angellist", "angellist"},
}

// jobCountRe pulls "12 open positions" style counts out of page copy. Noisy
// by nature; the result only ever feeds the activity score.
var jobCountRe = regexp.MustCompile(`(?i)(\d+)\s*(?:open|available|current)\s*(?:position|job|role)s?`)

const jobCountCap = 50

type checkResult struct {
	WebsiteUp    bool
	ResponseTime time.Duration
	CareersURL   string
	CareersUp    bool
	HasJobs      bool
	JobCount     int
	Platforms    []string
	Note         string
}

// Checker performs the per-organization health probes.
type Checker struct {
	hc     *http.Client
	prober *discover.Prober
	ua     string
}

func NewChecker(ua string) *Checker {
	return &Checker{
		hc:     &http.Client{Timeout: 15 * time.Second},
		prober: discover.NewProber(ua, probePaths...),
		ua:     ua,
	}
}

func (c *Checker) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.ua)
	return c.hc.Do(req)
}

// Check probes one organization: website reachability and latency first,
// then the careers page and what it carries. A down website short-circuits.
func (c *Checker) Check(ctx context.Context, org domain.Organization) checkResult {
	var r checkResult

	start := time.Now()
	res, err := c.get(ctx, org.Website)
	r.ResponseTime = time.Since(start)
	if err != nil {
		r.Note = fmt.Sprintf("site down: %v", err)
		return r
	}
	res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		r.Note = fmt.Sprintf("site down: status %d", res.StatusCode)
		return r
	}
	r.WebsiteUp = true

	r.CareersURL = strings.TrimSpace(org.CareersURL)
	if r.CareersURL == "" {
		r.CareersURL = c.prober.FindCareersURL(ctx, org.Website)
	}
	if r.CareersURL == "" {
		return r
	}

	cres, err := c.get(ctx, r.CareersURL)
	if err != nil {
		return r
	}
	defer cres.Body.Close()
	if cres.StatusCode < 200 || cres.StatusCode > 299 {
		return r
	}
	r.CareersUp = true

	body, err := io.ReadAll(io.LimitReader(cres.Body, 1<<20))
	if err != nil {
		return r
	}
	page := strings.ToLower(string(body))

	for _, ind := range jobIndicators {
		if strings.Contains(page, ind) {
			r.HasJobs = true
			break
		}
	}

	for _, m := range jobCountRe.FindAllStringSubmatch(page, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > r.JobCount {
			r.JobCount = n
		}
	}
	if r.JobCount > jobCountCap {
		r.JobCount = jobCountCap
	}

	for _, ats := range atsIndicators {
		if strings.Contains(page, ats.needle) {
			r.Platforms = append(r.Platforms, ats.platform)
		}
	}

	return r
}
