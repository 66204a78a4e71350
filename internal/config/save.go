package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Alert.MinScore < 0 {
		errs = append(errs, "alert.min_score must be >= 0")
	}
	if cfg.Alert.MaxJobs < 0 {
		errs = append(errs, "alert.max_jobs must be >= 0")
	}
	if cfg.Alert.SMTP.Port < 0 || cfg.Alert.SMTP.Port > 65535 {
		errs = append(errs, "alert.smtp.port must be 0..65535")
	}
	if cfg.Alert.IMAP.Port < 0 || cfg.Alert.IMAP.Port > 65535 {
		errs = append(errs, "alert.imap.port must be 0..65535")
	}
	if cfg.Match.DailyCostLimit < 0 {
		errs = append(errs, "match.daily_cost_limit must be >= 0")
	}

	checkList := func(name string, xs []string) {
		for i, x := range xs {
			if x == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkList("discover.queries", cfg.Discover.Queries)
	checkList("alert.locations", cfg.Alert.Locations)
	checkList("alert.exclude_keywords", cfg.Alert.ExcludeKeywords)

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
