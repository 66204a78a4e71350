package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateFromHit_BuildsDirectoryRow(t *testing.T) {
	cand, ok := candidateFromHit(SearchHit{
		Title:   "Techstars Berlin - Accelerator for early-stage startups",
		Link:    "https://www.techstars.com/accelerators/berlin",
		Snippet: "A fintech and blockchain focused program in Germany.",
	})
	require.True(t, ok)
	assert.Equal(t, "Techstars Berlin", cand.Name)
	assert.Equal(t, "https://www.techstars.com", cand.Website)
	assert.Equal(t, "Germany", cand.Country)
	assert.Equal(t, "fintech;web3", cand.Focus)
}

func TestCandidateFromHit_SkipsAggregatorDomains(t *testing.T) {
	for _, link := range []string{
		"https://www.linkedin.com/company/ycombinator",
		"https://en.wikipedia.org/wiki/Startup_accelerator",
		"https://www.crunchbase.com/organization/antler",
	} {
		_, ok := candidateFromHit(SearchHit{Title: "Anything", Link: link})
		assert.False(t, ok, link)
	}
}

func TestCandidateFromHit_RejectsRelativeLinks(t *testing.T) {
	_, ok := candidateFromHit(SearchHit{Title: "X", Link: "/not/absolute"})
	assert.False(t, ok)
}

func TestCandidateFromHit_FallsBackToHostName(t *testing.T) {
	cand, ok := candidateFromHit(SearchHit{Title: "  ", Link: "https://www.antler.co/"})
	require.True(t, ok)
	assert.Equal(t, "antler.co", cand.Name)
}

func TestNameFromTitle_CutsTaglines(t *testing.T) {
	assert.Equal(t, "Antler", nameFromTitle("Antler - Invest in the world's most driven founders"))
	assert.Equal(t, "Y Combinator", nameFromTitle("Y Combinator | Startup Accelerator"))
	assert.Equal(t, "Plain Name", nameFromTitle("  Plain   Name  "))
}

func TestMatchHint_ShortHintsNeedWholeWords(t *testing.T) {
	assert.True(t, matchHint("the ai accelerator", "ai"))
	assert.False(t, matchHint("supply chain accelerator", "ai"))
	assert.False(t, matchHint("a comparison of programs", "paris"))
	assert.True(t, matchHint("based in paris, france", "paris"))
	assert.True(t, matchHint("web3-native fund", "web3"))
}

func TestFocusFor_DefaultsToGeneral(t *testing.T) {
	assert.Equal(t, "general", focusFor("an accelerator for ambitious teams"))
	assert.Equal(t, "climate", focusFor("backing cleantech founders"))
}

func TestCountryFor_FirstHintWins(t *testing.T) {
	assert.Equal(t, "United States", countryFor("programs in new york and berlin"))
	assert.Equal(t, "Unknown", countryFor("a global accelerator"))
}

func TestDefaultQueries_DeterministicRotation(t *testing.T) {
	a, b := DefaultQueries(), DefaultQueries()
	require.Equal(t, a, b)
	assert.Len(t, a, len(regions)+len(focusOrder))
	assert.Equal(t, "top startup accelerators Europe", a[0])
}
