package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Transcribe holds defaults for the transcription flags.
type Transcribe struct {
	Model       string `toml:"model"`
	Device      string `toml:"device"`
	ComputeType string `toml:"compute_type"`
	Language    string `toml:"language"`
	BeamSize    int    `toml:"beam_size"`
	VADFilter   bool   `toml:"vad_filter"`
}

// Engine configures how the faster-whisper helper is launched.
type Engine struct {
	// Python is the interpreter that has faster-whisper installed.
	Python string `toml:"python"`
	// TimeoutSeconds bounds a single run. Zero disables the limit.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// DeviceLock serializes accelerator use across concurrent invocations.
	DeviceLock bool `toml:"device_lock"`
}

// Cache configures the transcript cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for fwtranscribe.
type Config struct {
	Transcribe Transcribe `toml:"transcribe"`
	Engine     Engine     `toml:"engine"`
	Cache      Cache      `toml:"cache"`
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
}

// ErrNoHome reports that a "~" path could not be expanded because the home
// directory is unknown.
var ErrNoHome = errors.New("home directory unavailable")

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(ConfigEnv))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if isMissing(err) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	// Without a home directory only the project file is searched.
	defaultPath, err := expandPath(defaultConfigPath)
	switch {
	case errors.Is(err, ErrNoHome):
		defaultPath = ""
	case err != nil:
		return "", false, err
	}

	if defaultPath != "" {
		if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
			return defaultPath, true, nil
		}
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	if defaultPath == "" {
		return projectPath, false, nil
	}
	return defaultPath, false, nil
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// StateAvailable reports whether a state directory could be resolved. When it
// is false the cache and the device lock are disabled.
func (c *Config) StateAvailable() bool {
	return c.Paths.StateDir != ""
}

// EnsureDirectories creates the state directory and the cache parent when the
// cache is enabled.
func (c *Config) EnsureDirectories() error {
	if !c.StateAvailable() {
		return nil
	}
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	if c.Cache.Enabled && c.Cache.Path != "" {
		if dir := filepath.Dir(c.Cache.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create cache directory %q: %w", dir, err)
			}
		}
	}
	return nil
}

// DeviceLockPath returns the lock file used to serialize accelerator access.
// It is empty when no state directory is available.
func (c *Config) DeviceLockPath() string {
	if !c.StateAvailable() {
		return ""
	}
	return filepath.Join(c.Paths.StateDir, "device.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w: %w", ErrNoHome, err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
