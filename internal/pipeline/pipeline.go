// Package pipeline chains the stages into one run: discover new
// organizations, validate them, scrape careers pages, score the postings,
// and send the digest. A failed stage logs and the run moves on.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"accelscout/internal/alert"
	"accelscout/internal/config"
	"accelscout/internal/csvio"
	"accelscout/internal/discover"
	"accelscout/internal/events"
	"accelscout/internal/match"
	"accelscout/internal/metrics"
	"accelscout/internal/scrape"
	"accelscout/internal/secrets"
	"accelscout/internal/store"
	"accelscout/internal/validate"
)

// DirectoryFile is the accelerator directory CSV inside the data dir.
const DirectoryFile = "accelerators.csv"

type stage struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Pipeline owns one configured run sequence. Build with New, start with Run.
// Disabled stages are left out entirely so they never count against the
// run's success rate.
type Pipeline struct {
	cfg     config.Config
	db      *sql.DB
	hub     *events.Hub
	dataDir string
	stages  []stage
}

func New(cfg config.Config, db *sql.DB, hub *events.Hub, dataDir string) *Pipeline {
	p := &Pipeline{cfg: cfg, db: db, hub: hub, dataDir: dataDir}

	if cfg.Discover.Enabled {
		p.stages = append(p.stages, stage{"discover", p.discoverStage})
	}
	if cfg.Validate.Enabled {
		p.stages = append(p.stages, stage{"validate", p.validateStage})
	}
	p.stages = append(p.stages, stage{"scrape", p.scrapeStage})
	p.stages = append(p.stages, stage{"match", p.matchStage})
	if cfg.Alert.Enabled {
		p.stages = append(p.stages, stage{"alert", p.alertStage})
	}
	return p
}

func (p *Pipeline) directoryPath() string {
	return filepath.Join(p.dataDir, DirectoryFile)
}

// Run executes the configured stages under the data-dir lock. A second
// concurrent run fails fast with ErrAlreadyRunning.
func (p *Pipeline) Run(ctx context.Context) (store.Run, error) {
	lock, err := acquireLock(p.dataDir)
	if err != nil {
		return store.Run{}, err
	}
	defer func() { _ = lock.Unlock() }()

	summary := store.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if p.db != nil {
		if err := store.StartRun(ctx, p.db, summary.ID); err != nil {
			return store.Run{}, fmt.Errorf("record run start: %w", err)
		}
	}
	log.Printf("[pipeline] run %s: %d stages", summary.ID, len(p.stages))
	p.emit(events.TypePipelineStarted, map[string]string{"run_id": summary.ID})

	stageTimeout := time.Duration(p.cfg.Pipeline.StageTimeoutMinutes) * time.Minute
	pause := time.Duration(p.cfg.Pipeline.StagePauseSeconds) * time.Second
	counts := map[string]int{}

	for i, st := range p.stages {
		if ctx.Err() != nil {
			summary.Notes = "cancelled: " + ctx.Err().Error()
			break
		}
		if i > 0 && pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}

		summary.StagesRun++
		start := time.Now()

		stageCtx, cancel := context.WithTimeout(ctx, stageTimeout)
		n, err := st.run(stageCtx)
		cancel()

		if err != nil {
			log.Printf("[pipeline] %s failed after %s: %v",
				st.name, time.Since(start).Round(time.Millisecond), err)
			metrics.StageRuns.WithLabelValues(st.name, "error").Inc()
			p.emit(events.TypeStageFailed, map[string]string{"stage": st.name, "error": err.Error()})
			continue
		}

		summary.StagesOK++
		counts[st.name] = n
		metrics.StageRuns.WithLabelValues(st.name, "ok").Inc()
		log.Printf("[pipeline] %s ok: %d items in %s",
			st.name, n, time.Since(start).Round(time.Millisecond))
		p.emit(events.TypeStageFinished, map[string]any{"stage": st.name, "items": n})
	}

	summary.FinishedAt = time.Now().UTC().Format(time.RFC3339)
	summary.JobsScraped = counts["scrape"]
	summary.JobsScored = counts["match"]
	summary.AlertsSent = counts["alert"]
	summary.Success = summary.StagesRun > 0 &&
		float64(summary.StagesOK)/float64(summary.StagesRun) >= 0.6

	if p.db != nil {
		// Bookkeeping still has to land when the run context is gone.
		finCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.FinishRun(finCtx, p.db, summary); err != nil {
			log.Printf("[pipeline] record run finish: %v", err)
		}
	}

	p.emit(events.TypePipelineFinished, summary)
	log.Printf("[pipeline] run %s done: %d/%d stages ok, success=%v",
		summary.ID, summary.StagesOK, summary.StagesRun, summary.Success)
	return summary, nil
}

func (p *Pipeline) emit(typ string, data any) {
	if p.hub == nil {
		return
	}
	p.hub.Publish(events.MakeEvent("", typ, 1, data))
}

func (p *Pipeline) discoverStage(ctx context.Context) (int, error) {
	key, err := secrets.GetCSEKey()
	if err != nil {
		return 0, err
	}
	id, err := secrets.GetCSEID()
	if err != nil {
		return 0, err
	}
	s, err := discover.NewCSESearcher(ctx, key, id)
	if err != nil {
		return 0, err
	}
	return discover.DiscoverNewAccelerators(ctx, p.cfg, s, p.directoryPath())
}

func (p *Pipeline) validateStage(ctx context.Context) (int, error) {
	return validate.ValidateAccelerators(ctx, p.cfg, p.directoryPath())
}

func (p *Pipeline) scrapeStage(ctx context.Context) (int, error) {
	scfg := scrape.Config{
		UserAgent:      p.cfg.Scrape.UserAgent,
		Timeout:        time.Duration(p.cfg.Scrape.TimeoutSeconds) * time.Second,
		LocatorTimeout: time.Duration(p.cfg.Scrape.LocatorSeconds) * time.Second,
		OrgDelay:       time.Duration(p.cfg.Scrape.OrgDelaySeconds) * time.Second,
		HostRate:       p.cfg.Scrape.HostRate,
		HostBurst:      p.cfg.Scrape.HostBurst,
	}

	n, err := scrape.ScrapeHighQualityJobs(ctx, scfg,
		p.directoryPath(), filepath.Join(p.dataDir, "jobs_raw.csv"))
	if err != nil {
		return 0, err
	}
	p.mirrorRawJobs()
	return n, nil
}

// mirrorRawJobs copies this run's postings into sqlite so the HTTP API can
// serve them with first_seen/last_seen history the CSVs never keep.
func (p *Pipeline) mirrorRawJobs() {
	if p.db == nil {
		return
	}
	jobs, err := csvio.ReadJobs(filepath.Join(p.dataDir, "jobs_raw.csv"))
	if err != nil {
		log.Printf("[pipeline] mirror raw jobs: %v", err)
		return
	}

	added := 0
	for _, j := range jobs {
		isNew, err := store.UpsertScraped(p.db, store.JobUpsert{
			JobURL:     j.JobURL,
			Title:      j.Title,
			Location:   j.Location,
			Platform:   j.Platform,
			OrgName:    j.OrgName,
			OrgWebsite: j.OrgWebsite,
			OrgCountry: j.OrgCountry,
			OrgFocus:   j.OrgFocus,
			SourceURL:  j.SourceURL,
		})
		if err != nil {
			log.Printf("[pipeline] upsert %s: %v", j.JobURL, err)
			continue
		}
		if isNew {
			added++
		}
	}
	log.Printf("[pipeline] store: %d new of %d scraped", added, len(jobs))
}

func (p *Pipeline) matchStage(ctx context.Context) (int, error) {
	var scorer match.Scorer
	if key, err := secrets.GetGeminiKey(); err != nil {
		log.Printf("[match] no Gemini key (%v), using the fallback scorer", err)
	} else {
		g, err := match.NewGeminiScorer(ctx, key, p.cfg.Match.Model)
		if err != nil {
			log.Printf("[match] gemini init: %v, using the fallback scorer", err)
		} else {
			defer g.Close()
			scorer = g
		}
	}

	n, err := match.ScoreNewJobs(ctx, p.cfg, scorer, p.dataDir)
	if err != nil {
		return 0, err
	}
	p.mirrorScores()
	return n, nil
}

func (p *Pipeline) mirrorScores() {
	if p.db == nil {
		return
	}
	jobs, err := csvio.ReadScoredJobs(filepath.Join(p.dataDir, "jobs_scored.csv"))
	if err != nil {
		log.Printf("[pipeline] mirror scores: %v", err)
		return
	}
	for _, j := range jobs {
		if err := store.ApplyScore(p.db, j.JobURL, j.AIScore, j.Recommendation, j.ScoredDate); err != nil {
			log.Printf("[pipeline] score %s: %v", j.JobURL, err)
		}
	}
}

func (p *Pipeline) alertStage(ctx context.Context) (int, error) {
	password, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(p.cfg))
	if err != nil {
		return 0, err
	}
	mailer := alert.NewMailer(p.cfg, password)
	return alert.SendJobAlerts(ctx, p.cfg, p.db, mailer, p.dataDir, false)
}
