// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type QueriesFile struct {
	Discover struct {
		Queries []string `yaml:"queries"`
	} `yaml:"discover"`
}

// OverlayQueries merges a hand-curated discovery query pack on top of the
// main config. The pack is optional and fully replaces the configured list
// when present, so curating queries never means editing config.yml.
func OverlayQueries(cfg *Config, queriesPath string) error {
	b, err := os.ReadFile(queriesPath)
	if err != nil {
		// Missing queries file should not kill startup
		return nil
	}

	var qf QueriesFile
	if err := yaml.Unmarshal(b, &qf); err != nil {
		return err
	}

	if len(qf.Discover.Queries) > 0 {
		cfg.Discover.Queries = qf.Discover.Queries
	}
	return nil
}
