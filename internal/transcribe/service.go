package transcribe

import (
	"context"
	"errors"
	"log/slog"

	"fwtranscribe/internal/language"
	"fwtranscribe/internal/logging"
	"fwtranscribe/internal/preflight"
)

// ResultCache stores finished transcripts keyed by audio content and options.
type ResultCache interface {
	Lookup(ctx context.Context, opts Options) (Result, bool, error)
	Store(ctx context.Context, opts Options, result Result) error
}

// Locker serializes accelerator use. Acquire blocks until the lock is held
// and returns the function that releases it.
type Locker interface {
	Acquire(ctx context.Context) (func() error, error)
}

// Service runs one transcription end to end: capability check, audio
// preflight, optional cache and device lock, then segment reduction.
type Service struct {
	engine Engine
	logger *slog.Logger
	cache  ResultCache
	locker Locker
}

// NewService creates a Service around engine.
func NewService(engine Engine, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

// WithCache enables transcript caching.
func (s *Service) WithCache(cache ResultCache) {
	s.cache = cache
}

// WithLocker enables the accelerator lock for non-cpu devices.
func (s *Service) WithLocker(locker Locker) {
	s.locker = locker
}

// Run transcribes opts.AudioPath. Errors are *LibraryUnavailableError when the
// engine cannot be loaded and *TranscriptionError for everything else.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	opts = s.prepare(opts)

	if err := s.engine.Check(ctx); err != nil {
		var libErr *LibraryUnavailableError
		if errors.As(err, &libErr) {
			return Result{}, err
		}
		return Result{}, failed(err)
	}

	if err := preflight.CheckAudioFile(opts.AudioPath); err != nil {
		return Result{}, failed(err)
	}
	s.logWAVHeader(opts.AudioPath)

	if s.cache != nil {
		cached, ok, err := s.cache.Lookup(ctx, opts)
		switch {
		case err != nil:
			s.logger.Warn("transcript cache lookup failed",
				logging.String(logging.FieldEventType, "cache_lookup_failed"),
				logging.Error(err))
		case ok:
			s.logger.Info("transcript served from cache", logging.String(logging.FieldAudio, opts.AudioPath))
			return cached, nil
		}
	}

	if s.locker != nil && opts.UsesAccelerator() {
		release, err := s.locker.Acquire(ctx)
		if err != nil {
			return Result{}, failed(err)
		}
		defer func() {
			if err := release(); err != nil {
				s.logger.Warn("device lock release failed", logging.Error(err))
			}
		}()
	}

	s.logger.Debug("starting transcription",
		logging.String(logging.FieldAudio, opts.AudioPath),
		logging.String("model", opts.Model),
		logging.String("device", opts.Device),
		logging.String("compute_type", opts.ComputeType),
		logging.String("language", opts.Language),
		logging.Int("beam_size", opts.BeamSize),
		logging.Bool("vad_filter", opts.VADFilter))

	reader, info, err := s.engine.Transcribe(ctx, opts)
	if err != nil {
		return Result{}, failed(err)
	}
	result, err := Collect(reader, info)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("transcription complete",
		logging.String("language", result.Language),
		logging.String("language_name", language.DisplayName(result.Language)),
		logging.Float64("language_probability", info.LanguageProbability),
		logging.Float64("duration_seconds", info.Duration),
		logging.Int("chars", len(result.Text)))

	if s.cache != nil {
		if err := s.cache.Store(ctx, opts, result); err != nil {
			s.logger.Warn("transcript cache store failed",
				logging.String(logging.FieldEventType, "cache_store_failed"),
				logging.Error(err))
		}
	}
	return result, nil
}

func (s *Service) prepare(opts Options) Options {
	opts = opts.Normalized()
	if hint := language.NormalizeHint(opts.Language); hint != opts.Language {
		s.logger.Debug("normalized language hint",
			logging.String("input", opts.Language),
			logging.String("language", hint))
		opts.Language = hint
	}
	if !KnownDevice(opts.Device) {
		s.logger.Debug("passing unrecognized device to engine", logging.String("device", opts.Device))
	}
	if !KnownComputeType(opts.ComputeType) {
		s.logger.Debug("passing unrecognized compute type to engine", logging.String("compute_type", opts.ComputeType))
	}
	return opts
}

func (s *Service) logWAVHeader(path string) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	info, ok, err := preflight.ProbeWAV(path)
	switch {
	case err != nil:
		s.logger.Debug("wav header probe failed", logging.Error(err))
	case ok:
		s.logger.Debug("wav header",
			logging.Int("sample_rate", info.SampleRate),
			logging.Int("channels", info.Channels),
			logging.Int("bit_depth", info.BitDepth),
			logging.Duration("duration", info.Duration))
	}
}
