package preflight

import (
	"context"

	"fwtranscribe/internal/config"
	"fwtranscribe/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional marks checks whose failure does not block transcription.
	Optional bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(ctx, cfg) {
		results = append(results, fromStatus(status))
	}

	results = append(results, CheckStateDirectory(cfg))
	results = append(results, CheckCacheFromConfig(cfg))
	results = append(results, CheckDeviceLockFromConfig(cfg))

	return results
}

// Blocking reports whether any required check failed.
func Blocking(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

func fromStatus(status deps.Status) Result {
	detail := status.Detail
	if status.Available {
		detail = status.Path
	}
	return Result{
		Name:     status.Name,
		Passed:   status.Available,
		Detail:   detail,
		Optional: status.Optional,
	}
}
