package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelscout/internal/csvio"
	"accelscout/internal/domain"
)

// testCfg drops the politeness delay and opens up the host limiter so the
// suite is not pacing itself against loopback servers.
func testCfg() Config {
	return Config{OrgDelay: 0, HostRate: 500, HostBurst: 50}
}

const leverCareersPage = `<html>
<head><script src="https://jobs.lever.co/embed.js"></script></head>
<body>
	<div class="posting-title"><a href="/apply/42">Lead Smart Contract Engineer</a></div>
</body>
</html>`

func leverSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/careers">Careers</a></body></html>`)
	})
	mux.HandleFunc("/careers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, leverCareersPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestEngineRun_LeverEndToEnd(t *testing.T) {
	srv := leverSite(t)

	orgs := []domain.Organization{{
		Name:      "Acme Labs",
		Website:   srv.URL,
		Status:    "active",
		Priority:  "high",
		Country:   "Germany",
		FocusTags: "fintech;web3",
	}}

	got := NewEngine(testCfg()).Run(context.Background(), orgs)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "Lead Smart Contract Engineer", p.Title)
	assert.Equal(t, srv.URL+"/apply/42", p.JobURL)
	assert.Equal(t, srv.URL+"/careers", p.SourceURL)
	assert.Equal(t, "lever", p.Platform)
	assert.Equal(t, defaultLocation, p.Location)
	assert.Equal(t, "Acme Labs", p.OrgName)
	assert.Equal(t, srv.URL, p.OrgWebsite)
	assert.Equal(t, "Germany", p.OrgCountry)
	assert.Equal(t, "fintech;web3", p.OrgFocus)
	assert.NotEmpty(t, p.DiscoveredDate)
}

func TestEngineRun_OrgFailureDoesNotAbortRun(t *testing.T) {
	good1 := leverSite(t)
	good2 := leverSite(t)
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	orgs := []domain.Organization{
		{Name: "First", Website: good1.URL, Status: "active", Priority: "high", ActivityScore: 3},
		{Name: "Broken", Website: broken.URL, Status: "active", Priority: "high", ActivityScore: 2},
		{Name: "Last", Website: good2.URL, Status: "active", Priority: "high", ActivityScore: 1},
	}

	got := NewEngine(testCfg()).Run(context.Background(), orgs)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].OrgName)
	assert.Equal(t, "Last", got[1].OrgName)
}

func TestEngineRun_SkipsIneligibleOrgs(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(srv.Close)

	orgs := []domain.Organization{
		{Name: "Paused", Website: srv.URL, Status: "paused", Priority: "high"},
		{Name: "LowPrio", Website: srv.URL, Status: "active", Priority: "low"},
	}

	got := NewEngine(testCfg()).Run(context.Background(), orgs)
	assert.Empty(t, got)
	assert.Zero(t, hits.Load())
}

func TestEngineRun_DedupesAcrossOrgs(t *testing.T) {
	srv := leverSite(t)

	// Two directory rows pointing at the same board yield one posting, kept
	// under whichever org was scraped first.
	orgs := []domain.Organization{
		{Name: "Row A", Website: srv.URL, Status: "active", Priority: "high", ActivityScore: 2},
		{Name: "Row B", Website: srv.URL, Status: "active", Priority: "medium", ActivityScore: 1},
	}

	got := NewEngine(testCfg()).Run(context.Background(), orgs)
	require.Len(t, got, 1)
	assert.Equal(t, "Row A", got[0].OrgName)
}

func TestEligible_OrdersByActivityScoreDesc(t *testing.T) {
	orgs := []domain.Organization{
		{Name: "Mid", Status: "active", Priority: "high", ActivityScore: 5},
		{Name: "Out", Status: "inactive", Priority: "high", ActivityScore: 99},
		{Name: "Top", Status: "monitor", Priority: "medium", ActivityScore: 8},
		{Name: "TieFirst", Status: "active", Priority: "medium", ActivityScore: 3},
		{Name: "TieSecond", Status: "active", Priority: "high", ActivityScore: 3},
	}

	got := Eligible(orgs)
	require.Len(t, got, 4)
	assert.Equal(t, "Top", got[0].Name)
	assert.Equal(t, "Mid", got[1].Name)
	assert.Equal(t, "TieFirst", got[2].Name)
	assert.Equal(t, "TieSecond", got[3].Name)
}

func writeDirectory(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, "accelerators.csv")
	content := "Name,Website,Status,Scrape_Priority,Country,Focus_Tags,Careers_URL,Activity_Score\n"
	for _, r := range rows {
		content += r + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScrapeHighQualityJobs_WritesRawJobsFile(t *testing.T) {
	srv := leverSite(t)
	dir := t.TempDir()

	in := writeDirectory(t, dir,
		fmt.Sprintf("Acme Labs,%s,active,high,Germany,fintech,,7.5", srv.URL))
	out := filepath.Join(dir, "jobs_raw.csv")

	n, err := ScrapeHighQualityJobs(context.Background(), testCfg(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tbl, err := csvio.ReadTable(out)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Equal(t, "Lead Smart Contract Engineer", tbl.Get(row, "title"))
	assert.Equal(t, tbl.Get(row, "title"), tbl.Get(row, "snippet"))
	assert.Equal(t, "lever", tbl.Get(row, "platform"))
	assert.Equal(t, "Acme Labs", tbl.Get(row, "accelerator_name"))
}

func TestScrapeHighQualityJobs_OverwritesPreviousOutput(t *testing.T) {
	srv := leverSite(t)
	dir := t.TempDir()

	in := writeDirectory(t, dir,
		fmt.Sprintf("Acme Labs,%s,active,high,,,,5", srv.URL))
	out := filepath.Join(dir, "jobs_raw.csv")
	require.NoError(t, os.WriteFile(out, []byte("stale,columns\nx,y\n"), 0o644))

	_, err := ScrapeHighQualityJobs(context.Background(), testCfg(), in, out)
	require.NoError(t, err)

	jobs, err := csvio.ReadJobs(out)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Lead Smart Contract Engineer", jobs[0].Title)
}

func TestScrapeHighQualityJobs_CareersURLOverrideSkipsRootFetch(t *testing.T) {
	var rootHits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		rootHits.Add(1)
		http.Error(w, "should not be fetched", http.StatusInternalServerError)
	})
	mux.HandleFunc("/jobs-page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, leverCareersPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	in := writeDirectory(t, dir,
		fmt.Sprintf("Acme Labs,%s,active,high,,,%s/jobs-page,5", srv.URL, srv.URL))
	out := filepath.Join(dir, "jobs_raw.csv")

	n, err := ScrapeHighQualityJobs(context.Background(), testCfg(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, rootHits.Load(), "careers override must bypass the locator")
}

func TestScrapeHighQualityJobs_MissingDirectoryFails(t *testing.T) {
	dir := t.TempDir()
	_, err := ScrapeHighQualityJobs(context.Background(), testCfg(),
		filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read directory")
}
