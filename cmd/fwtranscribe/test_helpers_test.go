package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fwtranscribe/internal/config"
	"fwtranscribe/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	homeDir    string
	configPath string
	python     string
	audio      string
}

// setupCLITestEnv isolates HOME and the config/interpreter environment and
// installs a stub interpreter behaving as stub.
func setupCLITestEnv(t *testing.T, stub testsupport.StubPython) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "fwtranscribe", "config.toml")
	t.Setenv(config.ConfigEnv, configPath)

	python := testsupport.WriteStubPython(t, filepath.Join(base, "bin"), stub)
	t.Setenv(config.PythonEnv, python)

	audio := filepath.Join(base, "clip.wav")
	testsupport.WriteWAV(t, audio, 16000, 1, 1600)

	return &cliTestEnv{
		baseDir:    base,
		homeDir:    homeDir,
		configPath: configPath,
		python:     python,
		audio:      audio,
	}
}

// replacePython rewrites the stub interpreter in place.
func (e *cliTestEnv) replacePython(t *testing.T, stub testsupport.StubPython) {
	t.Helper()
	testsupport.WriteStubPython(t, filepath.Dir(e.python), stub)
}

func (e *cliTestEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(e.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func readArgsIfAny(python string) ([]byte, error) {
	return os.ReadFile(testsupport.ArgsFile(python))
}
