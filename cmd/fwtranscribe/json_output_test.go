package main

import (
	"strings"
	"testing"

	"fwtranscribe/internal/transcribe"
)

func TestWriteResultKeepsLineSeparators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "hello", `{"text":"hello","language":"en"}`},
		{"line separator", "a\u2028b", "{\"text\":\"a\u2028b\",\"language\":\"en\"}"},
		{"paragraph separator", "a\u2029b", "{\"text\":\"a\u2029b\",\"language\":\"en\"}"},
		{"escaped backslash", `a\u2028`, `{"text":"a\\u2028","language":"en"}`},
		{"quote and tab", "\"\t", `{"text":"\"\t","language":"en"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf strings.Builder
			if err := writeResult(&buf, transcribe.Result{Text: tc.text, Language: "en"}); err != nil {
				t.Fatalf("writeResult: %v", err)
			}
			if got := buf.String(); got != tc.want+"\n" {
				t.Fatalf("got %q, want %q", got, tc.want+"\n")
			}
		})
	}
}
