package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrgsScraped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "scrape",
		Name:      "orgs_total",
		Help:      "Organizations processed by the scraper.",
	})

	PostingsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "scrape",
		Name:      "postings_extracted_total",
		Help:      "Validated postings extracted, before cross-org dedupe.",
	})

	PostingsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "scrape",
		Name:      "postings_saved_total",
		Help:      "Deduplicated postings written to the raw jobs file.",
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "accelscout",
		Subsystem: "scrape",
		Name:      "fetch_seconds",
		Help:      "Careers-page fetch latency.",
		Buckets:   prometheus.DefBuckets,
	})

	StageRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "pipeline",
		Name:      "stage_runs_total",
		Help:      "Pipeline stage executions by outcome.",
	}, []string{"stage", "outcome"})

	SearchQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "discover",
		Name:      "queries_total",
		Help:      "Search API queries issued during discovery.",
	})

	OrgsDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "discover",
		Name:      "orgs_total",
		Help:      "New organizations appended to the directory.",
	})

	OrgsValidated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "validate",
		Name:      "orgs_total",
		Help:      "Organizations health-checked by the validator.",
	})

	JobsScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "match",
		Name:      "jobs_scored_total",
		Help:      "Jobs scored, by model used.",
	}, []string{"model"})

	AlertsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accelscout",
		Subsystem: "alert",
		Name:      "digests_sent_total",
		Help:      "Digest emails delivered.",
	})
)
