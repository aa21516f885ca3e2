// Package devicelock serializes accelerator use across concurrent
// fwtranscribe processes with an advisory file lock.
package devicelock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"fwtranscribe/internal/logging"
)

// DefaultRetryDelay is the polling interval while another process holds the lock.
const DefaultRetryDelay = 250 * time.Millisecond

// Lock guards a single lock file.
type Lock struct {
	path       string
	retryDelay time.Duration
	logger     *slog.Logger
}

// New returns a lock backed by path. The file is created on first Acquire.
func New(path string, logger *slog.Logger) *Lock {
	return &Lock{
		path:       path,
		retryDelay: DefaultRetryDelay,
		logger:     logging.NewComponentLogger(logger, "devicelock"),
	}
}

// WithRetryDelay overrides the polling interval.
func (l *Lock) WithRetryDelay(d time.Duration) *Lock {
	if d > 0 {
		l.retryDelay = d
	}
	return l
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire blocks until the lock is held or ctx is done. The returned release
// function unlocks the file and is safe to call more than once.
//
// A lock file that cannot be created or opened is skipped with a warning and
// the run proceeds unlocked. Only contention that outlasts ctx is an error.
func (l *Lock) Acquire(ctx context.Context) (func() error, error) {
	if l.path == "" {
		return nil, errors.New("device lock path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return l.unlocked(fmt.Errorf("create lock directory: %w", err)), nil
	}

	fl := flock.New(l.path)
	locked, err := fl.TryLock()
	if err != nil {
		return l.unlocked(fmt.Errorf("open device lock: %w", err)), nil
	}
	if !locked {
		l.logger.Info("waiting for device lock", logging.String("path", l.path))
		started := time.Now()
		locked, err = fl.TryLockContext(ctx, l.retryDelay)
		if err != nil {
			return nil, fmt.Errorf("wait for device lock: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("device lock %s is held by another process", l.path)
		}
		l.logger.Debug("device lock acquired", logging.Duration("waited", time.Since(started)))
	}

	released := false
	return func() error {
		if released {
			return nil
		}
		released = true
		if err := fl.Unlock(); err != nil {
			return fmt.Errorf("release device lock: %w", err)
		}
		return nil
	}, nil
}

func (l *Lock) unlocked(cause error) func() error {
	l.logger.Warn("device lock unavailable; continuing without it",
		logging.String(logging.FieldEventType, "device_lock_unavailable"),
		logging.String("path", l.path),
		logging.Error(cause))
	return func() error { return nil }
}
