package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"fwtranscribe/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.ConfigEnv, "")
	t.Setenv(config.PythonEnv, "")
	return tempHome
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "fwtranscribe", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "fwtranscribe")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Cache.Path != filepath.Join(wantState, "transcripts.db") {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
	if cfg.Cache.Enabled {
		t.Fatal("expected cache disabled by default")
	}
	if cfg.Transcribe.Model != "small" || cfg.Transcribe.Device != "auto" || cfg.Transcribe.ComputeType != "int8" {
		t.Fatalf("unexpected transcribe defaults: %+v", cfg.Transcribe)
	}
	if cfg.Transcribe.BeamSize != 1 || !cfg.Transcribe.VADFilter || cfg.Transcribe.Language != "" {
		t.Fatalf("unexpected transcribe defaults: %+v", cfg.Transcribe)
	}
	if cfg.Engine.Python != "python3" {
		t.Fatalf("unexpected python default: %q", cfg.Engine.Python)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.DeviceLockPath() != filepath.Join(wantState, "device.lock") {
		t.Fatalf("unexpected device lock path: %q", cfg.DeviceLockPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
}

func TestLoadWithoutHomeDisablesStateFeatures(t *testing.T) {
	isolate(t)
	t.Setenv("HOME", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatalf("expected no config file, got %q", resolved)
	}
	if filepath.Base(resolved) != "fwtranscribe.toml" {
		t.Fatalf("expected project config path, got %q", resolved)
	}
	if cfg.StateAvailable() || cfg.Paths.StateDir != "" {
		t.Fatalf("expected state directory to be unavailable, got %q", cfg.Paths.StateDir)
	}
	if cfg.Cache.Enabled || cfg.Cache.Path != "" {
		t.Fatalf("expected cache disabled, got %+v", cfg.Cache)
	}
	if cfg.Engine.DeviceLock || cfg.DeviceLockPath() != "" {
		t.Fatalf("expected device lock disabled, got lock=%v path=%q", cfg.Engine.DeviceLock, cfg.DeviceLockPath())
	}
	if cfg.Transcribe.Model != "small" {
		t.Fatalf("expected built-in defaults, got %+v", cfg.Transcribe)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories without state dir: %v", err)
	}
}

func TestLoadWithoutHomeKeepsExplicitStateDir(t *testing.T) {
	isolate(t)
	stateDir := filepath.Join(t.TempDir(), "state")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[paths]\nstate_dir = \"" + stateDir + "\"\n[cache]\nenabled = true\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HOME", "")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StateDir != stateDir || !cfg.Cache.Enabled {
		t.Fatalf("expected explicit state dir and cache to survive, got %+v %+v", cfg.Paths, cfg.Cache)
	}
	if cfg.Cache.Path != filepath.Join(stateDir, "transcripts.db") {
		t.Fatalf("unexpected cache path %q", cfg.Cache.Path)
	}
}

func TestLoadConfigEnvBeneathRegularFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv(config.ConfigEnv, filepath.Join(file, "config.toml"))

	_, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config beneath a regular file to count as missing")
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "fwtranscribe.toml")

	type payload struct {
		Transcribe struct {
			Model     string `toml:"model"`
			Device    string `toml:"device"`
			Language  string `toml:"language"`
			BeamSize  int    `toml:"beam_size"`
			VADFilter bool   `toml:"vad_filter"`
		} `toml:"transcribe"`
		Cache struct {
			Enabled bool   `toml:"enabled"`
			Path    string `toml:"path"`
		} `toml:"cache"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Transcribe.Model = "large-v3"
	custom.Transcribe.Device = " CUDA "
	custom.Transcribe.Language = "zh"
	custom.Transcribe.BeamSize = -3
	custom.Transcribe.VADFilter = false
	custom.Cache.Enabled = true
	custom.Cache.Path = "~/cache/t.db"
	custom.Logging.Format = "yaml"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Transcribe.Model != "large-v3" {
		t.Fatalf("expected model from file, got %q", cfg.Transcribe.Model)
	}
	if cfg.Transcribe.Device != "cuda" {
		t.Fatalf("expected device to be normalized, got %q", cfg.Transcribe.Device)
	}
	if cfg.Transcribe.BeamSize != 1 {
		t.Fatalf("expected beam size clamped to 1, got %d", cfg.Transcribe.BeamSize)
	}
	if cfg.Transcribe.VADFilter {
		t.Fatal("expected vad_filter false from file")
	}
	if cfg.Transcribe.ComputeType != "int8" {
		t.Fatalf("expected compute type default to survive, got %q", cfg.Transcribe.ComputeType)
	}
	if !cfg.Cache.Enabled || !strings.HasSuffix(cfg.Cache.Path, filepath.Join("cache", "t.db")) || strings.HasPrefix(cfg.Cache.Path, "~") {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected unknown log format to fall back to console, got %q", cfg.Logging.Format)
	}
}

func TestLoadUsesConfigEnv(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(configPath, []byte("[transcribe]\nmodel = \"tiny\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.ConfigEnv, configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env config path to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Transcribe.Model != "tiny" {
		t.Fatalf("expected model from env config, got %q", cfg.Transcribe.Model)
	}
}

func TestPythonEnvOverridesConfigFile(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "fwtranscribe.toml")
	if err := os.WriteFile(configPath, []byte("[engine]\npython = \"/opt/file/python\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.PythonEnv, "/opt/env/python")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Engine.Python != "/opt/env/python" {
		t.Fatalf("expected python from env, got %q", cfg.Engine.Python)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(configPath, []byte("[transcribe\nmodel = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Transcribe.Model != "small" || !cfg.Transcribe.VADFilter {
		t.Fatalf("sample transcribe section does not match defaults: %+v", cfg.Transcribe)
	}
	if !strings.Contains(cfg.Paths.StateDir, "fwtranscribe") {
		t.Fatalf("expected state dir to contain fwtranscribe, got %q", cfg.Paths.StateDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Engine.Python = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty python")
	}

	cfg = config.Default()
	cfg.Engine.TimeoutSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
