package scrape

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"accelscout/internal/csvio"
	"accelscout/internal/domain"
	"accelscout/internal/metrics"
	"accelscout/internal/scrape/util"
)

// Config carries every knob the scraper needs. Injected at construction so
// tests can shrink timeouts and drop the politeness delay.
type Config struct {
	UserAgent      string
	Timeout        time.Duration // careers-page fetches
	LocatorTimeout time.Duration // root-page fetch inside Locate
	OrgDelay       time.Duration // pause between organizations
	HostRate       float64       // per-host requests per second
	HostBurst      int
}

func (c Config) withDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.LocatorTimeout <= 0 {
		c.LocatorTimeout = 10 * time.Second
	}
	if c.OrgDelay < 0 {
		c.OrgDelay = 0
	}
	if c.HostRate <= 0 {
		c.HostRate = 1.0
	}
	if c.HostBurst <= 0 {
		c.HostBurst = 2
	}
	return c
}

// Engine runs the whole locate/fetch/detect/extract chain, one organization
// at a time.
type Engine struct {
	cfg     Config
	fetcher *Fetcher
	locator *Locator
}

func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	limiter := util.NewHostLimiter(cfg.HostRate, cfg.HostBurst)
	f := NewFetcher(cfg.Timeout, cfg.UserAgent, limiter)

	return &Engine{
		cfg:     cfg,
		fetcher: f,
		locator: NewLocator(f, cfg.LocatorTimeout),
	}
}

// Eligible filters to orgs cleared for scraping and orders them by activity
// score, highest first. The sort is stable so file order breaks ties.
func Eligible(orgs []domain.Organization) []domain.Organization {
	var out []domain.Organization
	for _, o := range orgs {
		if o.Scrapeable() {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ActivityScore > out[j].ActivityScore
	})
	return out
}

// Run scrapes every eligible organization sequentially and returns the
// deduplicated postings. Individual org failures never abort the run.
func (e *Engine) Run(ctx context.Context, orgs []domain.Organization) []domain.JobPosting {
	eligible := Eligible(orgs)
	log.Printf("[scrape] %d of %d organizations eligible", len(eligible), len(orgs))

	var all []domain.JobPosting
	for i, org := range eligible {
		log.Printf("[scrape] Processing %d/%d: %s", i+1, len(eligible), org.Name)
		postings := e.scrapeOrg(ctx, org)
		metrics.OrgsScraped.Inc()
		metrics.PostingsExtracted.Add(float64(len(postings)))
		all = append(all, postings...)

		if i < len(eligible)-1 && e.cfg.OrgDelay > 0 {
			select {
			case <-ctx.Done():
				log.Printf("[scrape] run cut short: %v", ctx.Err())
				return Dedupe(all)
			case <-time.After(e.cfg.OrgDelay):
			}
		}
	}
	return Dedupe(all)
}

// scrapeOrg is the per-organization failure boundary: any error or panic in
// here degrades to zero postings for this org and the run moves on.
func (e *Engine) scrapeOrg(ctx context.Context, org domain.Organization) (postings []domain.JobPosting) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scrape] %s: recovered: %v", org.Name, r)
			postings = nil
		}
	}()

	target := strings.TrimSpace(org.CareersURL)
	if target == "" {
		target = e.locator.Locate(ctx, org.Website)
	}

	page, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		log.Printf("[scrape] %s: %v", org.Name, err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		log.Printf("[scrape] %s: parse %s: %v", org.Name, page.URL, err)
		return nil
	}

	platform := Detect(doc, page.Body, page.URL)

	var candidates []domain.Candidate
	if platform != PlatformNone {
		candidates = ExtractStructured(doc, page.URL, platform)
	} else {
		candidates = ExtractGeneric(doc, page.URL)
	}

	label := platform
	if label == PlatformNone {
		label = PlatformGeneric
	}

	date := time.Now().Format("2006-01-02")
	for _, c := range candidates {
		postings = append(postings, domain.JobPosting{
			Title:          c.Title,
			Location:       c.Location,
			JobURL:         c.URL,
			Platform:       string(label),
			OrgName:        org.Name,
			OrgWebsite:     org.Website,
			OrgCountry:     org.Country,
			OrgFocus:       org.FocusTags,
			DiscoveredDate: date,
			SourceURL:      page.URL,
		})
	}

	if len(postings) > 0 {
		log.Printf("[scrape] %s: %d postings via %s", org.Name, len(postings), label)
	}
	return postings
}

// ScrapeHighQualityJobs reads the accelerator directory, scrapes every
// eligible organization, and overwrites the raw jobs file. Returns how many
// postings survived dedupe. Only directory-read and output-write failures
// surface as errors; everything else degrades per organization.
func ScrapeHighQualityJobs(ctx context.Context, cfg Config, inputPath, outputPath string) (int, error) {
	orgs, err := csvio.ReadOrganizations(inputPath)
	if err != nil {
		return 0, fmt.Errorf("read directory %s: %w", inputPath, err)
	}

	eng := NewEngine(cfg)
	postings := eng.Run(ctx, orgs)

	if err := csvio.WriteJobs(outputPath, postings); err != nil {
		return 0, fmt.Errorf("write %s: %w", outputPath, err)
	}

	metrics.PostingsSaved.Add(float64(len(postings)))
	log.Printf("[scrape] saved %d postings to %s", len(postings), outputPath)
	return len(postings), nil
}
