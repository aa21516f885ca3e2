// Package main hosts the fwtranscribe CLI entrypoint and command graph.
//
// The root command transcribes one audio file and prints a single JSON line
// with the transcript text and language. Subcommands cover environment
// diagnostics, configuration scaffolding, and transcript cache maintenance.
// Configuration resolution, logger setup, and exit-code mapping live here so
// the internal packages stay free of process concerns.
package main
