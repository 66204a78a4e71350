package match

import (
	"encoding/json"
	"os"
	"time"
)

// costPerCall is a rough per-request estimate for the flash-tier models.
// Close enough for budget gating; not billing.
const costPerCall = 0.002

// costTracker caps AI spend per calendar day. State persists across runs in
// a small JSON file so repeated invocations share one budget.
type costTracker struct {
	path  string
	limit float64

	Date  string  `json:"date"`
	Calls int     `json:"calls"`
	Cost  float64 `json:"cost"`
}

func loadCostTracker(path string, limit float64) *costTracker {
	t := &costTracker{path: path, limit: limit, Date: today()}

	b, err := os.ReadFile(path)
	if err != nil {
		return t
	}

	var saved costTracker
	if json.Unmarshal(b, &saved) == nil && saved.Date == t.Date {
		t.Calls = saved.Calls
		t.Cost = saved.Cost
	}
	return t
}

func (t *costTracker) allow() bool {
	return t.Cost+costPerCall <= t.limit
}

func (t *costTracker) record() {
	t.Calls++
	t.Cost += costPerCall
}

func (t *costTracker) save() error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.path, b, 0o644)
}

func today() string {
	return time.Now().Format("2006-01-02")
}
