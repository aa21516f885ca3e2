package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fwtranscribe/internal/transcribe"
)

// Process exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUnavailable = 2
	exitUsage       = 2
)

// Stderr prefixes for the two failure tiers.
const (
	importFailedPrefix = "faster-whisper import failed: "
	transcribeFailed   = "transcribe failed: "
)

// usageError marks command-line mistakes detected before any engine work.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(cmd *cobra.Command, format string, args ...any) error {
	return &usageError{cmd: cmd, err: fmt.Errorf(format, args...)}
}

// reportError prints err in the form matching its tier and returns the exit status.
func reportError(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	var usageErr *usageError
	if errors.As(err, &usageErr) {
		if usageErr.cmd != nil {
			fmt.Fprint(stderr, usageErr.cmd.UsageString())
		}
		fmt.Fprintf(stderr, "Error: %v\n", usageErr.err)
		return exitUsage
	}

	var libErr *transcribe.LibraryUnavailableError
	if errors.As(err, &libErr) {
		fmt.Fprintln(stderr, importFailedPrefix+libErr.Error())
		return exitUnavailable
	}

	var txErr *transcribe.TranscriptionError
	if errors.As(err, &txErr) {
		fmt.Fprintln(stderr, transcribeFailed+txErr.Error())
		return exitFailure
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFailure
}
