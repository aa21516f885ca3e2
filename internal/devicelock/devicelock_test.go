package devicelock

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"fwtranscribe/internal/logging"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "device.lock")
	lock := New(path, nil)

	release, err := lock.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	other := flock.New(path)
	locked, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if locked {
		t.Fatal("expected lock to be held")
	}

	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release: %v", err)
	}

	locked, err = other.TryLock()
	if err != nil {
		t.Fatalf("TryLock after release: %v", err)
	}
	if !locked {
		t.Fatal("expected lock to be free after release")
	}
	_ = other.Unlock()
}

func TestAcquireWaitsForHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.lock")
	holder := flock.New(path)
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("holder TryLock: ok=%v err=%v", ok, err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = holder.Unlock()
	}()

	lock := New(path, nil).WithRetryDelay(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	release, err := lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	_ = release()
}

func TestAcquireHonorsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.lock")
	holder := flock.New(path)
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("holder TryLock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock()

	lock := New(path, nil).WithRetryDelay(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := lock.Acquire(ctx)
	if err == nil {
		t.Fatal("expected error while lock is held")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestAcquireRejectsEmptyPath(t *testing.T) {
	if _, err := New("", nil).Acquire(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAcquireProceedsWhenLockFileUnusable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &logs})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	lock := New(filepath.Join(file, "state", "device.lock"), logger)

	release, err := lock.Acquire(context.Background())
	if err != nil {
		t.Fatalf("expected unusable lock file to be skipped, got %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !strings.Contains(logs.String(), "device lock unavailable") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}
