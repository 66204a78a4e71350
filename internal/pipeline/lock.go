package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning means another process holds the data-dir run lock.
var ErrAlreadyRunning = errors.New("another pipeline run is already in progress")

// acquireLock takes the run lock without blocking. The caller unlocks it.
func acquireLock(dataDir string) (*flock.Flock, error) {
	l := flock.New(filepath.Join(dataDir, "run.lock"))
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return l, nil
}
