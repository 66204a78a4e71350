// Package alert renders scored jobs into an email digest and delivers it.
package alert

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"accelscout/internal/config"
	"accelscout/internal/domain"
)

// Digest is one rendered alert email, both bodies.
type Digest struct {
	Subject string
	HTML    string
	Text    string
}

var confidenceRank = map[string]int{"low": 0, "medium": 1, "high": 2}

// FilterJobs applies the alert settings to the day's scored jobs: score
// floor, keyword excludes, location preferences, confidence floor, and the
// recommendation itself. Best matches first, capped at max_jobs.
func FilterJobs(jobs []domain.ScoredJob, cfg config.Config) []domain.ScoredJob {
	minRank := confidenceRank[strings.ToLower(cfg.Alert.MinConfidence)]

	var picked []domain.ScoredJob
	for _, j := range jobs {
		if j.AIScore < cfg.Alert.MinScore {
			continue
		}

		title := strings.ToLower(j.Title)
		excluded := false
		for _, kw := range cfg.Alert.ExcludeKeywords {
			if strings.Contains(title, strings.ToLower(kw)) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		if len(cfg.Alert.Locations) > 0 {
			loc := strings.ToLower(j.Location)
			match := false
			for _, pref := range cfg.Alert.Locations {
				if strings.Contains(loc, strings.ToLower(pref)) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}

		if confidenceRank[strings.ToLower(j.Confidence)] < minRank {
			continue
		}

		rec := strings.ToLower(j.Recommendation)
		if strings.HasPrefix(rec, "poor") || strings.HasPrefix(rec, "avoid") {
			continue
		}

		picked = append(picked, j)
	}

	sort.SliceStable(picked, func(i, k int) bool {
		return picked[i].AIScore > picked[k].AIScore
	})
	if cfg.Alert.MaxJobs > 0 && len(picked) > cfg.Alert.MaxJobs {
		picked = picked[:cfg.Alert.MaxJobs]
	}
	return picked
}

type digestJob struct {
	Title          string
	OrgName        string
	Location       string
	JobURL         string
	AIScore        float64
	AIReasoning    string
	Recommendation string
	Band           string
	Factors        []string
}

type digestData struct {
	Prefix    string
	Date      string
	Total     int
	AvgScore  float64
	Excellent int
	Good      int
	TopOrgs   []string
	Jobs      []digestJob
}

// BuildDigest renders the filtered jobs into subject, HTML, and plaintext.
func BuildDigest(jobs []domain.ScoredJob, cfg config.Config) (Digest, error) {
	data := digestData{
		Prefix: cfg.Alert.SubjectPrefix,
		Date:   time.Now().Format("January 2, 2006"),
		Total:  len(jobs),
	}

	orgCounts := map[string]int{}
	var sum float64
	for _, j := range jobs {
		sum += j.AIScore
		switch {
		case j.AIScore >= 9:
			data.Excellent++
		case j.AIScore >= 7:
			data.Good++
		}
		if j.OrgName != "" {
			orgCounts[j.OrgName]++
		}

		loc := j.Location
		if loc == "" {
			loc = "Location not specified"
		}
		data.Jobs = append(data.Jobs, digestJob{
			Title:          j.Title,
			OrgName:        j.OrgName,
			Location:       loc,
			JobURL:         j.JobURL,
			AIScore:        j.AIScore,
			AIReasoning:    j.AIReasoning,
			Recommendation: j.Recommendation,
			Band:           scoreBand(j.AIScore),
			Factors:        splitFactors(j.MatchFactors),
		})
	}
	if len(jobs) > 0 {
		data.AvgScore = sum / float64(len(jobs))
	}
	data.TopOrgs = topOrgs(orgCounts, 3)

	var html bytes.Buffer
	if err := digestTmpl.Execute(&html, data); err != nil {
		return Digest{}, fmt.Errorf("render digest: %w", err)
	}

	return Digest{
		Subject: subjectFor(cfg.Alert.SubjectPrefix, data),
		HTML:    html.String(),
		Text:    textDigest(data),
	}, nil
}

func subjectFor(prefix string, data digestData) string {
	switch {
	case data.Excellent > 0:
		return fmt.Sprintf("%s: %s", prefix, countNoun(data.Excellent, "excellent match", "excellent matches"))
	case data.Good > 0:
		return fmt.Sprintf("%s: %s", prefix, countNoun(data.Good, "strong match", "strong matches"))
	default:
		return fmt.Sprintf("%s: %s", prefix, countNoun(data.Total, "new match", "new matches"))
	}
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func scoreBand(score float64) string {
	switch {
	case score >= 9:
		return "excellent"
	case score >= 7:
		return "good"
	default:
		return "moderate"
	}
}

func splitFactors(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func topOrgs(counts map[string]int, n int) []string {
	type oc struct {
		name  string
		count int
	}
	all := make([]oc, 0, len(counts))
	for name, c := range counts {
		all = append(all, oc{name, c})
	}
	sort.Slice(all, func(i, k int) bool {
		if all[i].count != all[k].count {
			return all[i].count > all[k].count
		}
		return all[i].name < all[k].name
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, 0, len(all))
	for _, o := range all {
		out = append(out, fmt.Sprintf("%s (%d)", o.name, o.count))
	}
	return out
}

func textDigest(data digestData) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(data.Prefix) + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Date: %s\n", data.Date)
	fmt.Fprintf(&b, "Total matches: %d\n", data.Total)
	fmt.Fprintf(&b, "Average score: %.1f/10\n\n", data.AvgScore)

	for i, j := range data.Jobs {
		fmt.Fprintf(&b, "%d. %s - %.1f/10\n", i+1, j.Title, j.AIScore)
		fmt.Fprintf(&b, "   Organization: %s\n", j.OrgName)
		fmt.Fprintf(&b, "   Location: %s\n", j.Location)
		if j.AIReasoning != "" {
			fmt.Fprintf(&b, "   Why it matches: %s\n", j.AIReasoning)
		}
		fmt.Fprintf(&b, "   Apply: %s\n\n", j.JobURL)
	}

	b.WriteString("Generated by accelscout\n")
	return b.String()
}

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: -apple-system, 'Segoe UI', Helvetica, Arial, sans-serif; color: #333; background: #f7f9fc; margin: 0; padding: 20px; }
.container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 8px; overflow: hidden; }
.header { background: #4f46e5; color: #fff; padding: 24px 20px; text-align: center; }
.header h1 { margin: 0; font-size: 22px; }
.summary { background: #f8fafc; border-left: 4px solid #4f46e5; margin: 20px; padding: 16px; border-radius: 4px; }
.job { border: 1px solid #e2e8f0; border-radius: 8px; margin: 20px; overflow: hidden; }
.job-header { background: #f8fafc; padding: 14px 18px; border-bottom: 1px solid #e2e8f0; }
.job-title { margin: 0; font-size: 17px; color: #1e293b; }
.job-meta { margin: 4px 0 0; font-size: 13px; color: #64748b; }
.badge { display: inline-block; padding: 3px 10px; border-radius: 12px; font-size: 13px; font-weight: 600; }
.badge-excellent { background: #dcfce7; color: #166534; }
.badge-good { background: #dbeafe; color: #1d4ed8; }
.badge-moderate { background: #fef3c7; color: #d97706; }
.job-body { padding: 16px 18px; }
.reasoning { background: #f1f5f9; border-radius: 6px; padding: 12px; font-style: italic; margin: 0 0 12px; }
.factor { display: inline-block; background: #e0e7ff; color: #3730a3; border-radius: 10px; padding: 3px 8px; font-size: 12px; margin: 2px; }
.apply { display: inline-block; background: #4f46e5; color: #fff; text-decoration: none; border-radius: 6px; padding: 10px 20px; margin-top: 10px; }
.footer { color: #64748b; font-size: 13px; text-align: center; padding: 20px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.Prefix}}</h1>
    <p>{{.Date}} &middot; {{.Total}} matches</p>
  </div>
  <div class="summary">
    Average score <strong>{{printf "%.1f" .AvgScore}} / 10</strong>
    &middot; {{.Excellent}} excellent &middot; {{.Good}} good
    {{- if .TopOrgs}} &middot; most active: {{join .TopOrgs ", "}}{{end}}
  </div>
  {{range .Jobs}}
  <div class="job">
    <div class="job-header">
      <h3 class="job-title">{{.Title}}</h3>
      <p class="job-meta">
        <strong>{{.OrgName}}</strong> &middot; {{.Location}} &middot;
        <span class="badge badge-{{.Band}}">{{printf "%.1f" .AIScore}} / 10</span>
      </p>
    </div>
    <div class="job-body">
      {{if .AIReasoning}}<p class="reasoning">{{.AIReasoning}}</p>{{end}}
      {{if .Factors}}<div>{{range .Factors}}<span class="factor">{{.}}</span>{{end}}</div>{{end}}
      {{if .Recommendation}}<p><strong>Recommendation:</strong> {{.Recommendation}}</p>{{end}}
      <a class="apply" href="{{.JobURL}}">View posting</a>
    </div>
  </div>
  {{end}}
  <div class="footer">
    <p>Generated by accelscout. Tune alert thresholds in config.yml.</p>
  </div>
</div>
</body>
</html>`))
