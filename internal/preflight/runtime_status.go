package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"fwtranscribe/internal/config"
)

// CheckStateDirectory reports whether the state directory is usable. A
// missing directory passes because it is created on demand.
func CheckStateDirectory(cfg *config.Config) Result {
	const name = "State directory"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.StateAvailable() {
		return Result{Name: name, Optional: true, Detail: "Unavailable (home directory unknown; cache and device lock disabled)"}
	}
	if _, err := os.Stat(cfg.Paths.StateDir); os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (created on first use)", cfg.Paths.StateDir)}
	}
	result := CheckDirectoryAccess(name, cfg.Paths.StateDir)
	result.Optional = true
	return result
}

// CheckCacheFromConfig evaluates the transcript cache settings.
func CheckCacheFromConfig(cfg *config.Config) Result {
	const name = "Transcript cache"

	if cfg == nil {
		return Result{Name: name, Optional: true, Detail: "Unknown"}
	}
	if !cfg.Cache.Enabled {
		return Result{Name: name, Passed: true, Optional: true, Detail: "Disabled"}
	}
	info, err := os.Stat(cfg.Cache.Path)
	switch {
	case os.IsNotExist(err):
		return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (not created yet)", cfg.Cache.Path)}
	case err != nil:
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: stat: %v)", cfg.Cache.Path, err)}
	case info.IsDir():
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: is a directory)", cfg.Cache.Path)}
	}
	if err := unix.Access(cfg.Cache.Path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", cfg.Cache.Path, err)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: cfg.Cache.Path}
}

// CheckDeviceLockFromConfig describes the accelerator lock configuration.
func CheckDeviceLockFromConfig(cfg *config.Config) Result {
	const name = "Device lock"

	if cfg == nil {
		return Result{Name: name, Optional: true, Detail: "Unknown"}
	}
	if !cfg.Engine.DeviceLock {
		return Result{Name: name, Passed: true, Optional: true, Detail: "Disabled"}
	}
	if cfg.Transcribe.Device == "cpu" {
		return Result{Name: name, Passed: true, Optional: true, Detail: "Not used (device cpu)"}
	}
	lockPath := cfg.DeviceLockPath()
	dir := filepath.Dir(lockPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Optional: true, Detail: lockPath}
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: directory not writable: %v)", lockPath, err)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: lockPath}
}
