package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fwtranscribe/internal/cache"
	"fwtranscribe/internal/config"
	"fwtranscribe/internal/devicelock"
	"fwtranscribe/internal/logging"
	"fwtranscribe/internal/transcribe"
)

type transcribeFlags struct {
	audio       string
	model       string
	device      string
	computeType string
	language    string
	beamSize    int
	vadFilter   bool
	cache       bool
	clipboard   bool
}

// options merges explicit flags over config values. Config values already
// carry the built-in defaults.
func (f *transcribeFlags) options(fs *pflag.FlagSet, cfg *config.Config) transcribe.Options {
	opts := transcribe.Options{
		AudioPath:   f.audio,
		Model:       cfg.Transcribe.Model,
		Device:      cfg.Transcribe.Device,
		ComputeType: cfg.Transcribe.ComputeType,
		Language:    cfg.Transcribe.Language,
		BeamSize:    cfg.Transcribe.BeamSize,
		VADFilter:   cfg.Transcribe.VADFilter,
	}
	if fs.Changed("model") {
		opts.Model = f.model
	}
	if fs.Changed("device") {
		opts.Device = f.device
	}
	if fs.Changed("compute-type") {
		opts.ComputeType = f.computeType
	}
	if fs.Changed("language") {
		opts.Language = f.language
	}
	if fs.Changed("beam-size") {
		opts.BeamSize = f.beamSize
	}
	if fs.Changed("vad-filter") {
		opts.VADFilter = f.vadFilter
	}
	return opts.Normalized()
}

func runTranscribe(cmd *cobra.Command, cc *commandContext, flags *transcribeFlags) error {
	// Setup failures share the transcription tier so stderr keeps one prefix.
	cfg, err := cc.ensureConfig()
	if err != nil {
		return &transcribe.TranscriptionError{Err: fmt.Errorf("load config: %w", err)}
	}
	logger, err := cc.ensureLogger(cmd.ErrOrStderr())
	if err != nil {
		return &transcribe.TranscriptionError{Err: fmt.Errorf("init logging: %w", err)}
	}
	if cc.configExists {
		logger.Debug("loaded configuration", logging.String("path", cc.configPath))
	}
	if !cfg.StateAvailable() {
		logger.Debug("state directory unavailable; cache and device lock disabled")
	}

	opts := flags.options(cmd.Flags(), cfg)

	ctx := cmd.Context()
	if cfg.Engine.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Engine.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	svc := transcribe.NewService(transcribe.NewFasterWhisper(cfg.Engine.Python), logger)

	useCache := cfg.Cache.Enabled
	if cmd.Flags().Changed("cache") {
		useCache = flags.cache
	}
	if useCache || cfg.Engine.DeviceLock {
		if err := cfg.EnsureDirectories(); err != nil {
			logger.Warn("state directory unavailable", logging.Error(err))
		}
	}
	if useCache {
		store, err := cache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("transcript cache unavailable; continuing without it",
				logging.String(logging.FieldEventType, "cache_open_failed"),
				logging.String("path", cfg.Cache.Path),
				logging.Error(err))
		} else {
			defer store.Close()
			svc.WithCache(store)
		}
	}
	if cfg.Engine.DeviceLock && cfg.DeviceLockPath() != "" {
		svc.WithLocker(devicelock.New(cfg.DeviceLockPath(), logger))
	}

	result, err := svc.Run(ctx, opts)
	if err != nil {
		return err
	}

	if flags.clipboard {
		if err := copyToClipboard(result.Text); err != nil {
			logger.Warn("copy to clipboard failed", logging.Error(err))
		}
	}
	return writeResult(cmd.OutOrStdout(), result)
}
