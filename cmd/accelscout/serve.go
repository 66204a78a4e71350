package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"accelscout/internal/events"
	"accelscout/internal/httpapi"
	"accelscout/internal/pipeline"
	"accelscout/internal/scheduler"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the localhost API with scheduled pipeline runs",
	Long: "Serve the HTTP API for dashboards and re-run the pipeline on the\n" +
		"configured schedule until interrupted or told to shut down.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default 127.0.0.1:<app.port>)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}

	db, err := openStore(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	hub := events.NewHub()
	pipe := pipeline.New(cfg, db.Pool, hub, dir)
	running := new(atomic.Bool)

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		RunPipeline: pipe.Run,
		Running:     running,
	})

	token := os.Getenv("ACCELSCOUT_SHUTDOWN_TOKEN")
	if token == "" {
		if token, err = randomToken(16); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := func() {
		hub.Publish(events.MakeEvent("", events.TypeShutdown, 1, nil))
		stop()
	}
	mux.HandleFunc("/shutdown", shutdownHandler(token, shutdown))

	addr := serveAddr
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("[serve] listening on http://%s (data=%s)", ln.Addr(), dir)
	log.Printf("[serve] shutdown token: %s", token)

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		interval := time.Duration(cfg.Pipeline.ScheduleHours) * time.Hour
		scheduler.Every(gctx, interval, "pipeline", func(ctx context.Context) error {
			if !running.CompareAndSwap(false, true) {
				log.Printf("[serve] skipping scheduled run, one is already in progress")
				return nil
			}
			defer running.Store(false)
			_, err := pipe.Run(ctx)
			return err
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	return g.Wait()
}
