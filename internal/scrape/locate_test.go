package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator() (*Locator, *Fetcher) {
	f := NewFetcher(2*time.Second, "", nil)
	return NewLocator(f, 2*time.Second), f
}

func TestCareersLink_WordBoundaries(t *testing.T) {
	matches := []string{
		"/careers", "/careers/", "/jobs", "/de/jobs?team=eng",
		"Careers", "Jobs at Acme", "Work with us", "Join Us", "Opportunities",
		"/work-with-us", "career openings",
	}
	for _, s := range matches {
		assert.True(t, careersLink.MatchString(s), "expected match: %q", s)
	}

	// A domain spelled careers.io (or jobs.example.com) is not a path hit.
	misses := []string{
		"https://careers.io", "careers.io", "jobs.example.com",
		"https://jobsite.example.com/about", "/careers.html",
	}
	for _, s := range misses {
		assert.False(t, careersLink.MatchString(s), "expected no match: %q", s)
	}
}

func TestLocate_PicksFirstSameHostCareersAnchor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/about">About</a>
			<a href="/careers">Careers</a>
			<a href="/jobs">Jobs</a>
		</body></html>`)
	}))
	defer srv.Close()

	loc, _ := newTestLocator()
	got := loc.Locate(context.Background(), srv.URL)
	assert.Equal(t, srv.URL+"/careers", got)
}

func TestLocate_RejectsCrossDomainJobBoards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://boards.greenhouse.io/acme">Careers</a>
			<a href="https://jobs.thirdparty.example/acme">Open Jobs</a>
		</body></html>`)
	}))
	defer srv.Close()

	loc, _ := newTestLocator()
	got := loc.Locate(context.Background(), srv.URL)
	assert.Equal(t, srv.URL, got, "cross-domain anchors must not win")
}

func TestLocate_SameHostBeatsEarlierCrossDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://jobs.thirdparty.example/acme">Jobs</a>
			<a href="/join-us">Join us</a>
		</body></html>`)
	}))
	defer srv.Close()

	loc, _ := newTestLocator()
	got := loc.Locate(context.Background(), srv.URL)
	assert.Equal(t, srv.URL+"/join-us", got)
}

func TestLocate_NoAnchorFallsBackToRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/blog">Blog</a></body></html>`)
	}))
	defer srv.Close()

	loc, _ := newTestLocator()
	assert.Equal(t, srv.URL, loc.Locate(context.Background(), srv.URL))
}

func TestLocate_FetchFailureFallsBackToRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	loc, _ := newTestLocator()
	assert.Equal(t, srv.URL, loc.Locate(context.Background(), srv.URL))

	require.NotPanics(t, func() {
		got := loc.Locate(context.Background(), "http://127.0.0.1:1/unreachable")
		assert.Equal(t, "http://127.0.0.1:1/unreachable", got)
	})
}
