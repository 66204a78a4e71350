package httpapi

import "accelscout/internal/store"

type PipelineStatus struct {
	Running bool       `json:"running"`
	LastRun *store.Run `json:"last_run,omitempty"`
}
