package transcribe

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Collect drains r once and reduces the segments to a Result. Each segment
// text is trimmed, empty fragments are dropped, the rest are joined with a
// single space and the whole is trimmed again.
func Collect(r SegmentReader, info Info) (Result, error) {
	var parts []string
	for {
		seg, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = r.Close()
			return Result{}, failed(fmt.Errorf("next segment: %w", err))
		}
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if err := r.Close(); err != nil {
		return Result{}, failed(err)
	}
	return Result{
		Text:     JoinSegments(parts),
		Language: normalizeInfo(info).Language,
	}, nil
}

// JoinSegments joins trimmed, non-empty texts with single spaces.
func JoinSegments(texts []string) string {
	kept := make([]string, 0, len(texts))
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			kept = append(kept, text)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
