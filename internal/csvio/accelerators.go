package csvio

import (
	"strconv"
	"strings"

	"accelscout/internal/domain"
)

// Directory column names shared by the discovery and validation stages.
const (
	ColName          = "Name"
	ColWebsite       = "Website"
	ColStatus        = "Status"
	ColPriority      = "Scrape_Priority"
	ColCountry       = "Country"
	ColFocusTags     = "Focus_Tags"
	ColCareersURL    = "Careers_URL"
	ColActivityScore = "Activity_Score"
)

// DirectoryHeader is the minimal schema a fresh accelerators file starts
// with; validation grows it in place.
var DirectoryHeader = []string{
	ColName, ColWebsite, ColCountry, ColFocusTags, ColCareersURL,
	"Notes", "Discovery_Date", ColStatus, "Query_Source",
}

// ReadOrganizations loads the directory file into the scraper's read-only
// view. Missing optional columns read as empty, which simply makes a row
// ineligible; a malformed Activity_Score reads as 0.
func ReadOrganizations(path string) ([]domain.Organization, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	orgs := make([]domain.Organization, 0, len(t.Rows))
	for _, row := range t.Rows {
		name := strings.TrimSpace(t.Get(row, ColName))
		website := strings.TrimSpace(t.Get(row, ColWebsite))
		if name == "" || website == "" {
			continue
		}

		score, _ := strconv.ParseFloat(strings.TrimSpace(t.Get(row, ColActivityScore)), 64)

		orgs = append(orgs, domain.Organization{
			Name:          name,
			Website:       website,
			Status:        strings.TrimSpace(t.Get(row, ColStatus)),
			Priority:      strings.TrimSpace(t.Get(row, ColPriority)),
			Country:       strings.TrimSpace(t.Get(row, ColCountry)),
			FocusTags:     strings.TrimSpace(t.Get(row, ColFocusTags)),
			CareersURL:    strings.TrimSpace(t.Get(row, ColCareersURL)),
			ActivityScore: score,
		})
	}
	return orgs, nil
}
