package validate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/domain"
)

func TestScoreOf(t *testing.T) {
	assert.Equal(t, 0, scoreOf(checkResult{}), "down site scores zero")

	assert.Equal(t, 3, scoreOf(checkResult{
		WebsiteUp:    true,
		ResponseTime: time.Second,
	}), "fast site alone: 2 up + 1 fast")

	assert.Equal(t, 2, scoreOf(checkResult{
		WebsiteUp:    true,
		ResponseTime: 4 * time.Second,
	}), "not slow but not fast")

	assert.Equal(t, 1, scoreOf(checkResult{
		WebsiteUp:    true,
		ResponseTime: 8 * time.Second,
	}), "slow site only gets 1")

	assert.Equal(t, 10, scoreOf(checkResult{
		WebsiteUp:    true,
		ResponseTime: time.Second,
		CareersUp:    true,
		HasJobs:      true,
		JobCount:     6,
		Platforms:    []string{"greenhouse", "lever", "workday"},
	}), "everything maxes the 0-10 scale")
}

func TestStatusFor(t *testing.T) {
	status, prio := statusFor(checkResult{}, 0)
	assert.Equal(t, "error", status)
	assert.Equal(t, "low", prio)

	status, prio = statusFor(checkResult{WebsiteUp: true}, 8)
	assert.Equal(t, "active", status)
	assert.Equal(t, "high", prio)

	status, prio = statusFor(checkResult{WebsiteUp: true}, 5)
	assert.Equal(t, "monitor", status)
	assert.Equal(t, "medium", prio)

	status, prio = statusFor(checkResult{WebsiteUp: true}, 2)
	assert.Equal(t, "inactive", status)
	assert.Equal(t, "low", prio)
}

func TestJobCountRe(t *testing.T) {
	page := "we have 6 open positions and 3 available roles across teams"
	var max int
	for _, m := range jobCountRe.FindAllStringSubmatch(page, -1) {
		n := 0
		fmt.Sscanf(m[1], "%d", &n)
		if n > max {
			max = n
		}
	}
	assert.Equal(t, 6, max)

	assert.Empty(t, jobCountRe.FindAllStringSubmatch("open positions at acme", -1),
		"no digits, no match")
}

func TestChecker_HealthyOrgWithBusyBoard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>welcome</html>")
	})
	mux.HandleFunc("/careers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>We're hiring! 6 open positions.
			Senior Engineer roles via boards.greenhouse.io and jobs.lever.co.</html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewChecker("test-agent")
	r := c.Check(context.Background(), domain.Organization{Name: "Acme", Website: srv.URL})

	assert.True(t, r.WebsiteUp)
	assert.Equal(t, srv.URL+"/careers", r.CareersURL)
	assert.True(t, r.CareersUp)
	assert.True(t, r.HasJobs)
	assert.Equal(t, 6, r.JobCount)
	assert.Equal(t, []string{"greenhouse", "lever"}, r.Platforms)
	assert.Equal(t, 10, scoreOf(r))
}

func TestChecker_DownSiteShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewChecker("test-agent")
	r := c.Check(context.Background(), domain.Organization{Name: "Gone", Website: srv.URL})

	assert.False(t, r.WebsiteUp)
	assert.Contains(t, r.Note, "site down")
	assert.Equal(t, 0, scoreOf(r))
}

func TestChecker_RespectsExistingCareersURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/custom-board", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "join our team")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewChecker("test-agent")
	r := c.Check(context.Background(), domain.Organization{
		Name:       "Acme",
		Website:    srv.URL,
		CareersURL: srv.URL + "/custom-board",
	})

	assert.Equal(t, srv.URL+"/custom-board", r.CareersURL)
	assert.True(t, r.CareersUp)
	assert.True(t, r.HasJobs)
}

func TestValidateAccelerators_RewritesDirectory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/careers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "5 open positions, apply now. greenhouse board.")
	})
	up := httptest.NewServer(mux)
	t.Cleanup(up.Close)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "accelerators.csv")
	content := "Name,Website,Status\n" +
		fmt.Sprintf("Up Org,%s,discovered\n", up.URL) +
		fmt.Sprintf("Down Org,%s,discovered\n", down.URL) +
		",,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var cfg config.Config // zero pause keeps the test quick

	n, err := ValidateAccelerators(context.Background(), cfg, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "blank row skipped")

	tbl, err := csvio.ReadTable(path)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)

	upRow := tbl.Rows[0]
	assert.Equal(t, "active", tbl.Get(upRow, "Status"))
	assert.Equal(t, "high", tbl.Get(upRow, "Scrape_Priority"))
	assert.Equal(t, "9", tbl.Get(upRow, "Activity_Score"))
	assert.Equal(t, "true", tbl.Get(upRow, "Website_Accessible"))
	assert.Equal(t, up.URL+"/careers", tbl.Get(upRow, "Careers_URL"))
	assert.Equal(t, "greenhouse", tbl.Get(upRow, "Job_Platforms"))
	assert.NotEmpty(t, tbl.Get(upRow, "Last_Validated"))

	downRow := tbl.Rows[1]
	assert.Equal(t, "error", tbl.Get(downRow, "Status"))
	assert.Equal(t, "low", tbl.Get(downRow, "Scrape_Priority"))
	assert.Equal(t, "0", tbl.Get(downRow, "Activity_Score"))
	assert.Contains(t, tbl.Get(downRow, "Validation_Notes"), "site down")

	// The old file survives as a backup.
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}
