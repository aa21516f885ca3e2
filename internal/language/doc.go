// Package language normalizes language hints to the ISO 639-1 codes
// faster-whisper expects and maps codes to display names for logs.
package language
