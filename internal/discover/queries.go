package discover

import "fmt"

// focusOrder fixes iteration order so query rotations and tags come out
// deterministic.
var focusOrder = []string{"fintech", "healthtech", "climate", "ai", "web3", "saas", "deeptech"}

// focusAreas maps each tag to the vocabulary that earns it.
var focusAreas = map[string][]string{
	"fintech":    {"fintech", "financial services", "payments"},
	"healthtech": {"healthtech", "healthcare", "health tech", "biotech", "medtech"},
	"climate":    {"climate", "cleantech", "sustainability", "greentech"},
	"ai":         {"ai", "artificial intelligence", "machine learning"},
	"web3":       {"web3", "blockchain", "crypto", "cryptocurrency"},
	"saas":       {"saas", "b2b software"},
	"deeptech":   {"deeptech", "deep tech", "robotics", "hardware"},
}

var regions = []string{
	"Europe", "United States", "United Kingdom", "Germany",
	"France", "Netherlands", "Nordics", "Southeast Asia",
}

// DefaultQueries is the standard rotation: broad per-region sweeps first,
// then one focused query per area. Config or a queries.yml pack replaces it
// entirely when present.
func DefaultQueries() []string {
	qs := make([]string, 0, len(regions)+len(focusOrder))
	for _, r := range regions {
		qs = append(qs, fmt.Sprintf("top startup accelerators %s", r))
	}
	for _, f := range focusOrder {
		qs = append(qs, fmt.Sprintf("%s startup accelerator program", f))
	}
	return qs
}
