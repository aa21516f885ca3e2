// Package cache stores finished transcripts in SQLite so repeated runs over
// the same audio and options skip the model entirely.
//
// Entries are keyed by the SHA-256 of the audio bytes combined with every
// option that can change the output. The cache is opt-in; callers that do
// not enable it never open the database.
package cache
