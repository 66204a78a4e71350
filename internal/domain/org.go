package domain

import "strings"

// Organization is one accelerator row from the directory file. Discovery and
// validation own these records; the scraper only reads them.
type Organization struct {
	Name          string
	Website       string
	Status        string // discovered/active/monitor/inactive/error
	Priority      string // high/medium/low
	Country       string
	FocusTags     string
	CareersURL    string // optional override; empty means "locate it"
	ActivityScore float64
}

// Scrapeable reports whether validation cleared this org for scraping.
func (o Organization) Scrapeable() bool {
	status := strings.ToLower(strings.TrimSpace(o.Status))
	prio := strings.ToLower(strings.TrimSpace(o.Priority))

	if status != "active" && status != "monitor" {
		return false
	}
	return prio == "high" || prio == "medium"
}
