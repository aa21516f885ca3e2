package transcribe_test

import (
	"errors"
	"fmt"
	"testing"

	"fwtranscribe/internal/transcribe"
)

func TestLibraryUnavailableErrorMatching(t *testing.T) {
	cause := errors.New("No module named 'faster_whisper'")
	err := fmt.Errorf("check: %w", &transcribe.LibraryUnavailableError{Err: cause})

	if !errors.Is(err, transcribe.ErrLibraryUnavailable) {
		t.Fatal("expected errors.Is to match ErrLibraryUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if got := (&transcribe.LibraryUnavailableError{Err: cause}).Error(); got != cause.Error() {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&transcribe.LibraryUnavailableError{}).Error(); got == "" {
		t.Fatal("expected fallback message")
	}
}

func TestTranscriptionErrorMatching(t *testing.T) {
	cause := errors.New("CUDA out of memory")
	err := error(&transcribe.TranscriptionError{Err: cause})

	if errors.Is(err, transcribe.ErrLibraryUnavailable) {
		t.Fatal("transcription errors must not match ErrLibraryUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if err.Error() != "CUDA out of memory" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
