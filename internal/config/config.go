// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scrape struct {
		UserAgent       string  `yaml:"user_agent"`
		TimeoutSeconds  int     `yaml:"timeout_seconds"`
		LocatorSeconds  int     `yaml:"locator_seconds"`
		OrgDelaySeconds int     `yaml:"org_delay_seconds"`
		HostRate        float64 `yaml:"host_rate"`
		HostBurst       int     `yaml:"host_burst"`
	} `yaml:"scrape"`

	Discover struct {
		Enabled    bool     `yaml:"enabled"`
		MaxQueries int      `yaml:"max_queries"`
		Queries    []string `yaml:"queries"`
	} `yaml:"discover"`

	Validate struct {
		Enabled      bool `yaml:"enabled"`
		PauseSeconds int  `yaml:"pause_seconds"`
	} `yaml:"validate"`

	Match struct {
		Model          string  `yaml:"model"`
		ProfilePath    string  `yaml:"profile_path"`
		DailyCostLimit float64 `yaml:"daily_cost_limit"`
		PauseSeconds   int     `yaml:"pause_seconds"`
	} `yaml:"match"`

	Alert struct {
		Enabled         bool     `yaml:"enabled"`
		Recipient       string   `yaml:"recipient"`
		SubjectPrefix   string   `yaml:"subject_prefix"`
		MinScore        float64  `yaml:"min_score"`
		MaxJobs         int      `yaml:"max_jobs"`
		MinConfidence   string   `yaml:"min_confidence"`
		Frequency       string   `yaml:"frequency"`
		Locations       []string `yaml:"locations"`
		ExcludeKeywords []string `yaml:"exclude_keywords"`

		SMTP struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Username string `yaml:"username"`
		} `yaml:"smtp"`

		IMAP struct {
			Enabled bool   `yaml:"enabled"`
			Host    string `yaml:"host"`
			Port    int    `yaml:"port"`
			Mailbox string `yaml:"mailbox"`
		} `yaml:"imap"`
	} `yaml:"alert"`

	Pipeline struct {
		StageTimeoutMinutes int `yaml:"stage_timeout_minutes"`
		StagePauseSeconds   int `yaml:"stage_pause_seconds"`
		ScheduleHours       int `yaml:"schedule_hours"`
	} `yaml:"pipeline"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
