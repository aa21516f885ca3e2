package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscribe()
	c.normalizeEngine()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		if errors.Is(err, ErrNoHome) {
			c.disableState()
			return nil
		}
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

// disableState turns off the features that persist under the state directory.
func (c *Config) disableState() {
	c.Paths.StateDir = ""
	c.Cache.Enabled = false
	c.Cache.Path = ""
	c.Engine.DeviceLock = false
}

func (c *Config) normalizeTranscribe() {
	c.Transcribe.Model = strings.TrimSpace(c.Transcribe.Model)
	if c.Transcribe.Model == "" {
		c.Transcribe.Model = defaultModel
	}
	c.Transcribe.Device = strings.ToLower(strings.TrimSpace(c.Transcribe.Device))
	if c.Transcribe.Device == "" {
		c.Transcribe.Device = defaultDevice
	}
	c.Transcribe.ComputeType = strings.ToLower(strings.TrimSpace(c.Transcribe.ComputeType))
	if c.Transcribe.ComputeType == "" {
		c.Transcribe.ComputeType = defaultComputeType
	}
	c.Transcribe.Language = strings.TrimSpace(c.Transcribe.Language)
	if c.Transcribe.BeamSize < 1 {
		c.Transcribe.BeamSize = 1
	}
}

func (c *Config) normalizeEngine() {
	c.Engine.Python = strings.TrimSpace(c.Engine.Python)
	if value, ok := os.LookupEnv(PythonEnv); ok && strings.TrimSpace(value) != "" {
		c.Engine.Python = strings.TrimSpace(value)
	}
	if c.Engine.Python == "" {
		c.Engine.Python = defaultPython
	}
	if strings.HasPrefix(c.Engine.Python, "~") {
		if expanded, err := expandPath(c.Engine.Python); err == nil {
			c.Engine.Python = expanded
		}
	}
	if c.Engine.TimeoutSeconds < 0 {
		c.Engine.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		if !c.StateAvailable() {
			c.Cache.Enabled = false
			return nil
		}
		c.Cache.Path = filepath.Join(c.Paths.StateDir, defaultCacheName)
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		if errors.Is(err, ErrNoHome) {
			c.Cache.Enabled = false
			c.Cache.Path = ""
			return nil
		}
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
