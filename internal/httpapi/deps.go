package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"accelscout/internal/events"
	"accelscout/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Pipeline entrypoint (inject for testability)
	RunPipeline func(ctx context.Context) (store.Run, error)

	// Shared with the serve loop so /pipeline/status can report an
	// in-flight run before its summary lands in the store.
	Running *atomic.Bool
}
