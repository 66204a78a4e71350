package httpapi

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"sync/atomic"

	"accelscout/internal/store"
)

type PipelineHandler struct {
	DB          *sql.DB
	Running     *atomic.Bool
	RunPipeline func(ctx context.Context) (store.Run, error)
}

func (h PipelineHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := PipelineStatus{Running: h.Running.Load()}

	last, ok, err := store.LastRun(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if ok {
		st.LastRun = &last
	}
	writeJSON(w, st)
}

func (h PipelineHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.Running.CompareAndSwap(false, true) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	// The run outlives the request. Completion lands on the event
	// stream and in the runs table, so the response is just an ack.
	go func() {
		defer h.Running.Store(false)
		run, err := h.RunPipeline(context.Background())
		if err != nil {
			log.Printf("[api] pipeline run failed: %v", err)
			return
		}
		log.Printf("[api] pipeline run %s done (%d/%d stages ok)", run.ID, run.StagesOK, run.StagesRun)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
