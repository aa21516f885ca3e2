package deps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[0].Path != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Path)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Path != "" {
		t.Fatalf("expected no path for missing binary, got %q", results[1].Path)
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected blank command to be reported as not configured, got %#v", results[2])
	}
}

func TestResolveSearchesPATH(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "python3")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	status := Resolve(Requirement{Name: "Python", Command: " python3 "})
	if !status.Available || status.Path != stub {
		t.Fatalf("expected %q resolved from PATH, got %#v", stub, status)
	}
	if status.Command != "python3" {
		t.Fatalf("expected trimmed command, got %q", status.Command)
	}
}

func TestResolveDetails(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("PATH", dir)

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"bare name", "no-such-python", `"no-such-python" not found on PATH`},
		{"missing path", filepath.Join(dir, "missing"), filepath.Join(dir, "missing") + " not found"},
		{"not executable", plain, plain + " is not executable"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status := Resolve(Requirement{Command: tc.command})
			if status.Available {
				t.Fatalf("expected %q to be unavailable", tc.command)
			}
			if status.Detail != tc.want {
				t.Fatalf("detail = %q, want %q", status.Detail, tc.want)
			}
		})
	}
}

func writeInterpreter(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "python3")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write interpreter stub: %v", err)
	}
	return path
}

func TestCheckPythonModuleAvailable(t *testing.T) {
	python := writeInterpreter(t, "exit 0\n")

	status := CheckPythonModule(context.Background(), python, "faster_whisper")
	if !status.Available {
		t.Fatalf("expected module to be available, got detail %q", status.Detail)
	}
	if status.Command != python || status.Path != python {
		t.Fatalf("expected command and path %q, got %q / %q", python, status.Command, status.Path)
	}
}

func TestCheckPythonModuleImportError(t *testing.T) {
	python := writeInterpreter(t, `echo "Traceback (most recent call last):" >&2
echo "ModuleNotFoundError: No module named 'faster_whisper'" >&2
exit 1
`)

	status := CheckPythonModule(context.Background(), python, "faster_whisper")
	if status.Available {
		t.Fatal("expected module to be unavailable")
	}
	if !strings.Contains(status.Detail, "No module named 'faster_whisper'") {
		t.Fatalf("expected last stderr line in detail, got %q", status.Detail)
	}
}

func TestCheckPythonModuleMissingInterpreter(t *testing.T) {
	status := CheckPythonModule(context.Background(), filepath.Join(t.TempDir(), "nope"), "faster_whisper")
	if status.Available {
		t.Fatal("expected missing interpreter to be unavailable")
	}
	if status.Detail == "" {
		t.Fatal("expected detail for missing interpreter")
	}
}

func TestCheckPythonModuleNotConfigured(t *testing.T) {
	status := CheckPythonModule(context.Background(), "", "faster_whisper")
	if status.Available || status.Detail != "python interpreter not configured" {
		t.Fatalf("unexpected status: %#v", status)
	}
}
