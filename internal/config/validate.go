package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it. Zero-value knobs pick up their defaults here so the
// rest of the code never re-checks them.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// Normalize common lists
	out.Discover.Queries = trimList(out.Discover.Queries)
	out.Alert.Locations = trimList(out.Alert.Locations)
	out.Alert.ExcludeKeywords = trimList(out.Alert.ExcludeKeywords)
	out.Alert.Frequency = strings.ToLower(strings.TrimSpace(out.Alert.Frequency))
	out.Alert.MinConfidence = strings.ToLower(strings.TrimSpace(out.Alert.MinConfidence))

	// ---- Defaults ----

	if out.App.Port <= 0 {
		out.App.Port = 38471
	}
	if out.Scrape.TimeoutSeconds <= 0 {
		out.Scrape.TimeoutSeconds = 15
	}
	if out.Scrape.LocatorSeconds <= 0 {
		out.Scrape.LocatorSeconds = 10
	}
	if out.Scrape.HostRate <= 0 {
		out.Scrape.HostRate = 1.0
	}
	if out.Scrape.HostBurst <= 0 {
		out.Scrape.HostBurst = 2
	}
	if out.Discover.MaxQueries <= 0 {
		out.Discover.MaxQueries = 20
	}
	if out.Validate.PauseSeconds <= 0 {
		out.Validate.PauseSeconds = 1
	}
	if out.Match.Model == "" {
		out.Match.Model = "gemini-1.5-flash"
	}
	if out.Match.DailyCostLimit <= 0 {
		out.Match.DailyCostLimit = 5.0
	}
	if out.Match.PauseSeconds <= 0 {
		out.Match.PauseSeconds = 1
	}
	if out.Alert.MinScore <= 0 {
		out.Alert.MinScore = 7.0
	}
	if out.Alert.MaxJobs <= 0 {
		out.Alert.MaxJobs = 10
	}
	if out.Alert.SubjectPrefix == "" {
		out.Alert.SubjectPrefix = "Accelerator Job Matches"
	}
	if out.Alert.MinConfidence == "" {
		out.Alert.MinConfidence = "low"
	}
	if out.Alert.Frequency == "" {
		out.Alert.Frequency = "daily"
	}
	if out.Alert.IMAP.Mailbox == "" {
		out.Alert.IMAP.Mailbox = "Sent"
	}
	if out.Pipeline.StageTimeoutMinutes <= 0 {
		out.Pipeline.StageTimeoutMinutes = 30
	}
	if out.Pipeline.StagePauseSeconds <= 0 {
		out.Pipeline.StagePauseSeconds = 2
	}
	if out.Pipeline.ScheduleHours <= 0 {
		out.Pipeline.ScheduleHours = 168
	}

	// ---- Validation rules ----

	// scrape sanity
	if out.Scrape.OrgDelaySeconds < 0 {
		res.addErr("scrape.org_delay_seconds must be >= 0")
	} else if out.Scrape.OrgDelaySeconds == 0 {
		res.addWarn("scrape.org_delay_seconds is 0; target sites may rate-limit or block you.")
	}
	if out.Scrape.TimeoutSeconds < 5 {
		res.addWarn("scrape.timeout_seconds is very low (%d); slow careers pages will be skipped.", out.Scrape.TimeoutSeconds)
	}

	// discovery caps follow the search API quota
	if out.Discover.MaxQueries > 20 {
		res.addWarn("discover.max_queries capped at 20 (was %d).", out.Discover.MaxQueries)
		out.Discover.MaxQueries = 20
	}

	// match sanity
	if out.Match.DailyCostLimit > 50 {
		res.addWarn("match.daily_cost_limit is unusually high (%.2f); a runaway run could get expensive.", out.Match.DailyCostLimit)
	}

	// alert required fields if enabled (password not required here; it lives in the keychain)
	if out.Alert.Enabled {
		if strings.TrimSpace(out.Alert.SMTP.Host) == "" {
			res.addErr("alert.smtp.host is required when alert.enabled=true")
		}
		if out.Alert.SMTP.Port == 0 {
			res.addErr("alert.smtp.port is required when alert.enabled=true")
		}
		if strings.TrimSpace(out.Alert.SMTP.Username) == "" {
			res.addErr("alert.smtp.username is required when alert.enabled=true")
		}
		if strings.TrimSpace(out.Alert.Recipient) == "" {
			res.addErr("alert.recipient is required when alert.enabled=true")
		}
	}
	if out.Alert.IMAP.Enabled && strings.TrimSpace(out.Alert.IMAP.Host) == "" {
		res.addErr("alert.imap.host is required when alert.imap.enabled=true")
	}

	switch out.Alert.Frequency {
	case "daily", "weekly", "immediate":
	default:
		res.addErr("alert.frequency must be daily, weekly, or immediate (got %q)", out.Alert.Frequency)
	}

	switch out.Alert.MinConfidence {
	case "low", "medium", "high":
	default:
		res.addErr("alert.min_confidence must be low, medium, or high (got %q)", out.Alert.MinConfidence)
	}

	// simple reachability check
	if out.Alert.MinScore > 10 {
		res.addWarn("alert.min_score %.1f exceeds the 0-10 scoring scale; no job will ever alert.", out.Alert.MinScore)
	}

	return out, res
}
