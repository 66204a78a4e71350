package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/metrics"
	"accelscout/internal/scrape/util"
)

// DiscoverNewAccelerators runs the query rotation, extracts accelerator
// candidates from the results, probes each for a careers page, and appends
// anything new to the directory file. Returns how many rows were added.
//
// Known websites never re-append, so the stage is safe to run repeatedly.
func DiscoverNewAccelerators(ctx context.Context, cfg config.Config, s Searcher, directoryPath string) (int, error) {
	tbl, err := csvio.ReadTable(directoryPath)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, csvio.ErrEmptyFile) {
		tbl = csvio.NewTable(csvio.DirectoryHeader)
	} else if err != nil {
		return 0, fmt.Errorf("read directory %s: %w", directoryPath, err)
	}
	tbl.EnsureCols(csvio.DirectoryHeader...)

	known := map[string]bool{}
	for _, row := range tbl.Rows {
		if h := strings.TrimPrefix(util.HostOf(tbl.Get(row, csvio.ColWebsite)), "www."); h != "" {
			known[h] = true
		}
	}

	queries := cfg.Discover.Queries
	if len(queries) == 0 {
		queries = DefaultQueries()
	}
	if len(queries) > cfg.Discover.MaxQueries {
		queries = queries[:cfg.Discover.MaxQueries]
	}
	log.Printf("[discover] running %d queries against %d known organizations", len(queries), len(known))

	prober := NewProber(cfg.Scrape.UserAgent)
	today := time.Now().Format("2006-01-02")
	added := 0

	for i, q := range queries {
		if ctx.Err() != nil {
			log.Printf("[discover] run cut short: %v", ctx.Err())
			break
		}

		hits, err := s.Search(ctx, q)
		if err != nil {
			log.Printf("[discover] %v", err)
			continue
		}

		for _, hit := range hits {
			cand, ok := candidateFromHit(hit)
			if !ok {
				continue
			}
			host := strings.TrimPrefix(util.HostOf(cand.Website), "www.")
			if host == "" || known[host] {
				continue
			}
			known[host] = true

			tbl.Append(map[string]string{
				csvio.ColName:       cand.Name,
				csvio.ColWebsite:    cand.Website,
				csvio.ColCountry:    cand.Country,
				csvio.ColFocusTags:  cand.Focus,
				csvio.ColCareersURL: prober.FindCareersURL(ctx, cand.Website),
				csvio.ColStatus:     "discovered",
				"Discovery_Date":    today,
				"Query_Source":      q,
			})
			added++
			metrics.OrgsDiscovered.Inc()
			log.Printf("[discover] new: %s (%s)", cand.Name, cand.Website)
		}

		if i < len(queries)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}
	}

	if added > 0 {
		if err := csvio.WriteTableAtomic(directoryPath, tbl); err != nil {
			return 0, fmt.Errorf("write directory %s: %w", directoryPath, err)
		}
	}
	log.Printf("[discover] %d new organizations (directory now %d rows)", added, len(tbl.Rows))
	return added, nil
}
