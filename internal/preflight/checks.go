package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"fwtranscribe/internal/config"
	"fwtranscribe/internal/deps"
)

// ModuleName is the Python package the transcription helper imports.
const ModuleName = "faster_whisper"

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckAudioFile verifies that path names a regular file the process can read.
func CheckAudioFile(path string) error {
	if path == "" {
		return errors.New("audio path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("audio file %q does not exist", path)
		}
		return fmt.Errorf("stat audio file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("audio path %q is a directory", path)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return fmt.Errorf("audio file %q is not readable: %w", path, err)
	}
	return nil
}

// CheckSystemDeps evaluates the interpreter and the faster-whisper module for
// the given config. The module check is skipped when the interpreter is
// missing since its result would only repeat that failure.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Python",
			Command:     cfg.Engine.Python,
			Description: "Runs the faster-whisper helper",
		},
	}
	statuses := deps.CheckBinaries(requirements)
	if !statuses[0].Available {
		statuses = append(statuses, deps.Status{
			Name:        "Python module " + ModuleName,
			Command:     cfg.Engine.Python,
			Description: "Imported by the transcription helper",
			Detail:      "skipped (interpreter unavailable)",
		})
		return statuses
	}
	return append(statuses, deps.CheckPythonModule(ctx, statuses[0].Path, ModuleName))
}
