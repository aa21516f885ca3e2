package transcribe

import (
	"context"
	"strings"
)

// Segment is one recognized span of audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Info is the metadata the library reports alongside the segments.
type Info struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
}

// SegmentReader yields segments in order. Next returns io.EOF after the last
// segment. Close releases the underlying process and reports its outcome.
type SegmentReader interface {
	Next() (Segment, error)
	Close() error
}

// Engine is the speech-recognition backend.
type Engine interface {
	// Check verifies the library can be loaded. It returns a
	// *LibraryUnavailableError when it cannot.
	Check(ctx context.Context) error
	// Transcribe starts transcription of opts.AudioPath. The returned reader
	// must be drained or closed by the caller.
	Transcribe(ctx context.Context, opts Options) (SegmentReader, Info, error)
}

// Result is the payload written to stdout.
type Result struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func normalizeInfo(info Info) Info {
	info.Language = strings.TrimSpace(info.Language)
	return info
}
