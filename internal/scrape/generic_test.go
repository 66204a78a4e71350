package scrape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractGeneric_ScansJobContainers(t *testing.T) {
	markup := `<html><body>
		<nav class="main-nav"><a href="/about">About</a></nav>
		<div class="open-positions">
			<a href="/roles/1">Senior Backend Engineer</a>
			<a href="/roles/2">Growth Marketing Manager (Remote)</a>
			<a href="/apply">Apply Now</a>
		</div>
	</body></html>`

	got := ExtractGeneric(mustDoc(t, markup), "https://acme.com/careers")
	require.Len(t, got, 2)
	assert.Equal(t, "Senior Backend Engineer", got[0].Title)
	assert.Equal(t, "https://acme.com/roles/1", got[0].URL)
	assert.Equal(t, defaultLocation, got[0].Location)
}

func TestExtractGeneric_SecondPassOnlyWhenContainersYieldNothing(t *testing.T) {
	markup := `<html><body>
		<p>We are growing.</p>
		<a href="/careers/openings/3">Senior Data Analyst, Platform</a>
		<a href="/blog/post">Why we love analysts</a>
	</body></html>`

	got := ExtractGeneric(mustDoc(t, markup), "https://acme.com")
	require.Len(t, got, 1)
	assert.Equal(t, "Senior Data Analyst, Platform", got[0].Title)
	assert.Equal(t, "https://acme.com/careers/openings/3", got[0].URL)
}

func TestExtractGeneric_FirstPassSuppressesSecond(t *testing.T) {
	// A single validated container hit means the whole-document href scan
	// never runs, even if it would have found more.
	markup := `<html><body>
		<ul class="job-list"><li><a href="/roles/1">Senior Backend Engineer</a></li></ul>
		<a href="/jobs/extra">Principal Product Designer</a>
	</body></html>`

	got := ExtractGeneric(mustDoc(t, markup), "https://acme.com")
	require.Len(t, got, 1)
	assert.Equal(t, "Senior Backend Engineer", got[0].Title)
}

func TestExtractGeneric_DedupesByTitleWithinPage(t *testing.T) {
	markup := `<html><body>
		<div class="careers">
			<a href="/roles/1">Senior Backend Engineer</a>
		</div>
		<section class="job-openings">
			<a href="/roles/1?ref=footer">senior backend engineer</a>
		</section>
	</body></html>`

	got := ExtractGeneric(mustDoc(t, markup), "https://acme.com")
	assert.Len(t, got, 1)
}

func TestExtractGeneric_CapsAtFive(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><div class="positions">`)
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, `<a href="/roles/%d">Senior Platform Engineer %d</a>`, i, i)
	}
	b.WriteString(`</div></body></html>`)

	got := ExtractGeneric(mustDoc(t, b.String()), "https://acme.com")
	assert.Len(t, got, 5)
}

func TestExtractGeneric_NothingToFindIsNotAnError(t *testing.T) {
	markup := `<html><body><p>Just a brochure page.</p></body></html>`
	assert.Empty(t, ExtractGeneric(mustDoc(t, markup), "https://acme.com"))
}
