package domain

// Candidate is an unvalidated (title, url, location) triple pulled out of a
// page by one of the extractors. It never leaves the per-org scrape call.
type Candidate struct {
	Title    string
	URL      string
	Location string
}

// JobPosting is a validated, organization-tagged job record. Immutable once
// built; the deduplicator drops whole records, it never edits them.
type JobPosting struct {
	Title          string
	Location       string
	JobURL         string
	Platform       string // greenhouse/lever/workday/generic
	OrgName        string
	OrgWebsite     string
	OrgCountry     string
	OrgFocus       string
	DiscoveredDate string // 2006-01-02
	SourceURL      string
}
