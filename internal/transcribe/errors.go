package transcribe

import "errors"

// ErrLibraryUnavailable matches any LibraryUnavailableError via errors.Is.
var ErrLibraryUnavailable = errors.New("faster-whisper unavailable")

// LibraryUnavailableError reports that the speech-recognition library cannot
// be loaded in this environment. It is a deployment problem, not a data one.
type LibraryUnavailableError struct {
	Err error
}

func (e *LibraryUnavailableError) Error() string {
	if e.Err == nil {
		return ErrLibraryUnavailable.Error()
	}
	return e.Err.Error()
}

func (e *LibraryUnavailableError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLibraryUnavailable) match.
func (e *LibraryUnavailableError) Is(target error) bool {
	return target == ErrLibraryUnavailable
}

// TranscriptionError wraps any failure raised while constructing the model or
// transcribing the audio.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	if e.Err == nil {
		return "transcription failed"
	}
	return e.Err.Error()
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

func unavailable(err error) error {
	return &LibraryUnavailableError{Err: err}
}

func failed(err error) error {
	var libErr *LibraryUnavailableError
	if errors.As(err, &libErr) {
		return err
	}
	var txErr *TranscriptionError
	if errors.As(err, &txErr) {
		return err
	}
	return &TranscriptionError{Err: err}
}
