package preflight

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// WAVInfo summarizes a RIFF/WAVE header.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ProbeWAV reads the header of path. ok is false when the file is not a WAV
// container, which is not an error since the engine decodes other formats.
func ProbeWAV(path string) (info WAVInfo, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, false, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return WAVInfo{}, false, nil
	}
	duration, err := dec.Duration()
	if err != nil {
		return WAVInfo{}, true, fmt.Errorf("wav duration: %w", err)
	}
	return WAVInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   duration,
	}, true, nil
}
