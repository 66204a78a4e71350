package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelscout/internal/domain"
)

func posting(title, jobURL, org string) domain.JobPosting {
	return domain.JobPosting{Title: title, JobURL: jobURL, OrgName: org}
}

func TestDedupe_PunctuationVariantsOnOneDomainCollapse(t *testing.T) {
	in := []domain.JobPosting{
		posting("Senior Engineer", "https://acme.com/jobs/1", "Acme"),
		posting("Senior Engineer!!", "https://acme.com/jobs/2", "Acme"),
		posting("SENIOR   ENGINEER", "https://www.acme.com/jobs/3", "Acme"),
	}

	out := Dedupe(in)
	require.Len(t, out, 2)
	// First occurrence wins untouched.
	assert.Equal(t, "Senior Engineer", out[0].Title)
	assert.Equal(t, "https://acme.com/jobs/1", out[0].JobURL)
	// www. keeps its own host in the key, so the third survives.
	assert.Equal(t, "https://www.acme.com/jobs/3", out[1].JobURL)
}

func TestDedupe_SameTitleDifferentDomainsStay(t *testing.T) {
	in := []domain.JobPosting{
		posting("Senior Engineer", "https://acme.com/jobs/1", "Acme"),
		posting("Senior Engineer", "https://globex.io/openings/9", "Globex"),
	}

	out := Dedupe(in)
	assert.Len(t, out, 2)
}

func TestDedupe_DiacriticVariantsCollapse(t *testing.T) {
	in := []domain.JobPosting{
		posting("Développeur Web Senior", "https://acme.fr/jobs/1", "Acme"),
		posting("Developpeur web senior", "https://acme.fr/jobs/2", "Acme"),
	}

	out := Dedupe(in)
	assert.Len(t, out, 1)
}

func TestDedupe_EmptyInput(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
