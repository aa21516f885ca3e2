// Package config loads, normalizes, and validates fwtranscribe configuration.
//
// It supplies defaults for every transcription flag, expands user paths
// (including tilde shortcuts), reads TOML files, and honours environment
// fallbacks such as FWTRANSCRIBE_PYTHON. Command-line flags take precedence
// over anything loaded here; this package only provides the baseline.
package config
