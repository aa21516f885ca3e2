// Package preflight provides readiness checks for the input audio and the
// runtime environment fwtranscribe depends on.
//
// These checks run in two contexts:
//   - The transcription service calls CheckAudioFile before the engine
//     starts, so an unreadable path fails fast without loading a model.
//   - The CLI "fwtranscribe doctor" command uses RunAll to display the
//     interpreter, module, cache, and lock directory health.
package preflight
