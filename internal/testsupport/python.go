package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StubPython describes how a fake interpreter behaves. The stub answers the
// `-c "import faster_whisper"` capability probe and the helper invocation.
type StubPython struct {
	// ImportError, when set, makes the import probe and the helper fail with
	// this message. The helper exits 2 as the real one does.
	ImportError string
	// Stdout is written by the helper invocation.
	Stdout string
	// Stderr is written by the helper invocation.
	Stderr string
	// ExitCode is the helper's exit status.
	ExitCode int
	// HangSeconds makes the helper block without output for this long,
	// replacing the shell so a kill reaches the sleeping process.
	HangSeconds int
}

// WriteStubPython writes an executable interpreter stub into dir and returns
// its path. Helper arguments (after the -c script) are recorded one per line
// in ArgsFile(path).
func WriteStubPython(t testing.TB, dir string, stub StubPython) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	target := filepath.Join(dir, "python")

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("code=\"\"\n")
	b.WriteString("if [ \"$1\" = \"-c\" ]; then\n  code=\"$2\"\n  shift 2\nfi\n")
	b.WriteString("if [ \"$code\" = \"import faster_whisper\" ]; then\n")
	if stub.ImportError != "" {
		b.WriteString("  echo 'Traceback (most recent call last):' >&2\n")
		fmt.Fprintf(&b, "  echo %s >&2\n", shellQuote(stub.ImportError))
		b.WriteString("  exit 1\n")
	} else {
		b.WriteString("  exit 0\n")
	}
	b.WriteString("fi\n")
	fmt.Fprintf(&b, "printf '%%s\\n' \"$@\" > %s\n", shellQuote(ArgsFile(target)))
	if stub.ImportError != "" {
		fmt.Fprintf(&b, "echo %s >&2\nexit 2\n", shellQuote(stub.ImportError))
	}
	if stub.HangSeconds > 0 {
		fmt.Fprintf(&b, "exec sleep %d\n", stub.HangSeconds)
	}
	if stub.Stdout != "" {
		fmt.Fprintf(&b, "cat <<'FWSTUB_STDOUT'\n%s\nFWSTUB_STDOUT\n", strings.TrimRight(stub.Stdout, "\n"))
	}
	if stub.Stderr != "" {
		fmt.Fprintf(&b, "cat >&2 <<'FWSTUB_STDERR'\n%s\nFWSTUB_STDERR\n", strings.TrimRight(stub.Stderr, "\n"))
	}
	fmt.Fprintf(&b, "exit %d\n", stub.ExitCode)

	if err := os.WriteFile(target, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("write python stub: %v", err)
	}
	return target
}

// ArgsFile returns where the stub at python records its helper arguments.
func ArgsFile(python string) string {
	return python + ".args"
}

// ReadArgs returns the helper arguments recorded by the stub at python.
func ReadArgs(t testing.TB, python string) []string {
	t.Helper()
	data, err := os.ReadFile(ArgsFile(python))
	if err != nil {
		t.Fatalf("read stub args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// HelperOutput renders the line-delimited records the helper prints for a
// detected language and the given segment texts. A nil language is emitted
// as JSON null.
func HelperOutput(t testing.TB, language *string, texts ...string) string {
	t.Helper()

	lines := make([]string, 0, len(texts)+1)
	info, err := json.Marshal(map[string]any{
		"type":                 "info",
		"language":             language,
		"language_probability": 0.98,
		"duration":             float64(len(texts)),
	})
	if err != nil {
		t.Fatalf("marshal info: %v", err)
	}
	lines = append(lines, string(info))
	for i, text := range texts {
		seg, err := json.Marshal(map[string]any{
			"type":  "segment",
			"start": float64(i),
			"end":   float64(i + 1),
			"text":  text,
		})
		if err != nil {
			t.Fatalf("marshal segment: %v", err)
		}
		lines = append(lines, string(seg))
	}
	return strings.Join(lines, "\n")
}

// Lang returns a pointer to language for HelperOutput.
func Lang(language string) *string {
	return &language
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
