// Package logging assembles structured slog loggers for fwtranscribe.
//
// It owns the console and JSON handlers and centralizes level and output
// plumbing. Logs always go to stderr (or a caller-supplied writer) because
// stdout is reserved for the transcript payload. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
