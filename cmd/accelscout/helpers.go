package main

import (
	"bufio"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"accelscout/internal/config"
	"accelscout/internal/store"
)

func dataDir() string {
	dir := os.Getenv("ACCELSCOUT_DATA_DIR")
	if dir == "" {
		dir = "."
	}
	return dir
}

// loadConfig seeds the user config on first run, overlays the optional
// query pack, applies env overrides, and validates the result.
func loadConfig(dir string) (config.Config, error) {
	userCfgPath, err := config.EnsureUserConfig(dir, filepath.Join("config", "config.yml"))
	if err != nil {
		return config.Config{}, fmt.Errorf("config bootstrap: %w", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load %s: %w", userCfgPath, err)
	}

	if err := config.OverlayQueries(&cfg, filepath.Join(dir, "queries.yml")); err != nil {
		return config.Config{}, fmt.Errorf("overlay queries: %w", err)
	}

	if v := os.Getenv("DAILY_AI_COST_LIMIT"); v != "" {
		if limit, err := strconv.ParseFloat(v, 64); err == nil && limit > 0 {
			cfg.Match.DailyCostLimit = limit
		}
	}

	out, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		return config.Config{}, fmt.Errorf("invalid config: %s", strings.Join(res.Errors, "; "))
	}
	return out, nil
}

func openStore(dir string) (*store.DB, error) {
	db, err := store.Open(filepath.Join(dir, "accelscout.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return "", errors.New("no input")
	}
	v := strings.TrimSpace(sc.Text())
	if v == "" {
		return "", errors.New("empty value")
	}
	return v, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token string, shutdown func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			// RemoteAddr can sometimes be just a host; fall back safely
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Token guard
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond first; the server drains this request before it stops.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))
		shutdown()
	}
}
