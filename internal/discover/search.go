package discover

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"accelscout/internal/metrics"
)

// SearchHit is one web result, reduced to what extraction needs.
type SearchHit struct {
	Title   string
	Link    string
	Snippet string
}

// Searcher abstracts the web-search API so tests can feed canned results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// CSESearcher queries Google Programmable Search.
type CSESearcher struct {
	svc *customsearch.Service
	cx  string
}

func NewCSESearcher(ctx context.Context, apiKey, engineID string) (*CSESearcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init custom search: %w", err)
	}
	return &CSESearcher{svc: svc, cx: engineID}, nil
}

const searchAttempts = 3

// Search runs one query, retrying transient API failures with 2^attempt
// seconds of backoff between tries.
func (s *CSESearcher) Search(ctx context.Context, query string) ([]SearchHit, error) {
	var lastErr error
	for attempt := 0; attempt < searchAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<attempt) * time.Second
			log.Printf("[discover] query %q failed (attempt %d), retrying in %s", query, attempt, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := s.svc.Cse.List().Q(query).Cx(s.cx).Num(10).Context(ctx).Do()
		if err != nil {
			lastErr = err
			continue
		}

		metrics.SearchQueries.Inc()
		hits := make([]SearchHit, 0, len(resp.Items))
		for _, it := range resp.Items {
			hits = append(hits, SearchHit{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
		}
		return hits, nil
	}
	return nil, fmt.Errorf("search %q: %w", query, lastErr)
}
