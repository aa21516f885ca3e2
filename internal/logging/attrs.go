package logging

import (
	"context"
	"log/slog"
	"time"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the per-invocation identifier.
	FieldRunID = "run_id"
	// FieldAudio is the standardized structured logging key for the input audio path.
	FieldAudio = "audio"
	// FieldEventType tags records that tooling may want to filter on.
	FieldEventType = "event_type"
)

// String returns a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int returns an int attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Int64 returns an int64 attribute.
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

// Float64 returns a float64 attribute.
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

// Bool returns a bool attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Duration returns a duration attribute.
func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Error returns an attribute for err under the "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NoopHandler drops every record.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
