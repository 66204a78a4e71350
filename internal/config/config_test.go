package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RoundTripsShippedDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, err)

	assert.Equal(t, 38471, cfg.App.Port)
	assert.Equal(t, "Mozilla/5.0 (compatible; JobTracker/1.0)", cfg.Scrape.UserAgent)
	assert.Equal(t, 3, cfg.Scrape.OrgDelaySeconds)
	assert.Equal(t, 7.0, cfg.Alert.MinScore)
	assert.Contains(t, cfg.Alert.ExcludeKeywords, "intern")

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "shipped default must validate clean: %v", res.Errors)
}

func TestNormalizeAndValidate_FillsDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(Config{})
	require.True(t, res.OK(), "zero config plus defaults must validate: %v", res.Errors)

	assert.Equal(t, 38471, out.App.Port)
	assert.Equal(t, 15, out.Scrape.TimeoutSeconds)
	assert.Equal(t, 20, out.Discover.MaxQueries)
	assert.Equal(t, "gemini-1.5-flash", out.Match.Model)
	assert.Equal(t, 5.0, out.Match.DailyCostLimit)
	assert.Equal(t, 7.0, out.Alert.MinScore)
	assert.Equal(t, 10, out.Alert.MaxJobs)
	assert.Equal(t, "low", out.Alert.MinConfidence)
	assert.Equal(t, "daily", out.Alert.Frequency)
	assert.Equal(t, "Accelerator Job Matches", out.Alert.SubjectPrefix)
	assert.Equal(t, "Sent", out.Alert.IMAP.Mailbox)
	assert.Equal(t, 30, out.Pipeline.StageTimeoutMinutes)
}

func TestNormalizeAndValidate_WarnsOnZeroOrgDelay(t *testing.T) {
	var cfg Config
	cfg.Scrape.OrgDelaySeconds = 0

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "org_delay_seconds")
}

func TestNormalizeAndValidate_AlertRequiresSMTPFields(t *testing.T) {
	var cfg Config
	cfg.Alert.Enabled = true

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	joined := strings.Join(res.Errors, "\n")
	assert.Contains(t, joined, "alert.smtp.host")
	assert.Contains(t, joined, "alert.smtp.username")
	assert.Contains(t, joined, "alert.recipient")
}

func TestNormalizeAndValidate_RejectsUnknownFrequency(t *testing.T) {
	var cfg Config
	cfg.Alert.Frequency = "Hourly"

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "alert.frequency")
}

func TestNormalizeAndValidate_RejectsUnknownConfidence(t *testing.T) {
	var cfg Config
	cfg.Alert.MinConfidence = "certain"

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "alert.min_confidence")
}

func TestNormalizeAndValidate_CapsDiscoverQueries(t *testing.T) {
	var cfg Config
	cfg.Discover.MaxQueries = 80

	out, res := NormalizeAndValidate(cfg)
	assert.Equal(t, 20, out.Discover.MaxQueries)
	assert.NotEmpty(t, res.Warnings)
}

func TestNormalizeAndValidate_DedupesLists(t *testing.T) {
	var cfg Config
	cfg.Alert.ExcludeKeywords = []string{" intern ", "Intern", "", "unpaid"}

	out, _ := NormalizeAndValidate(cfg)
	assert.Equal(t, []string{"intern", "unpaid"}, out.Alert.ExcludeKeywords)
}

func TestSaveAtomic_RefusesInvalidConfig(t *testing.T) {
	var cfg Config // port 0
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.port")
}

func TestSaveAtomic_WritesAndKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	var cfg Config
	cfg.App.Port = 38471
	require.NoError(t, SaveAtomic(path, cfg))

	cfg.App.Port = 38472
	require.NoError(t, SaveAtomic(path, cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 38472, reloaded.App.Port)

	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestEnsureUserConfig_SeedsOnceThenLeavesAlone(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(defaultPath, []byte("app:\n  port: 1234\n"), 0o644))

	dataDir := filepath.Join(dir, "data")
	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	// User edits survive a second bootstrap.
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  port: 9999\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)

	cfg, err := Load(again)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.App.Port)
}

func TestOverlayQueries(t *testing.T) {
	dir := t.TempDir()
	packPath := filepath.Join(dir, "queries.yml")
	require.NoError(t, os.WriteFile(packPath, []byte(
		"discover:\n  queries:\n    - \"climate tech accelerator Berlin\"\n"), 0o644))

	var cfg Config
	cfg.Discover.Queries = []string{"stale query"}
	require.NoError(t, OverlayQueries(&cfg, packPath))
	assert.Equal(t, []string{"climate tech accelerator Berlin"}, cfg.Discover.Queries)

	// Missing pack leaves the config untouched.
	cfg.Discover.Queries = []string{"kept"}
	require.NoError(t, OverlayQueries(&cfg, filepath.Join(dir, "missing.yml")))
	assert.Equal(t, []string{"kept"}, cfg.Discover.Queries)
}
