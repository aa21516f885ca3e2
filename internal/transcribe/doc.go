// Package transcribe turns one audio file into a plain-text transcript using
// the faster-whisper speech-recognition library.
//
// This package handles:
//   - Options normalization (beam clamping, language hint defaults)
//   - The Engine capability check and transcription call
//   - Reducing the engine's segment stream into a Result payload
//
// The faster-whisper engine runs an embedded Python helper with a configured
// interpreter and reads its line-delimited JSON output. Decoding, model
// weights, and voice activity detection stay inside the library.
package transcribe
