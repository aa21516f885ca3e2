package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"fwtranscribe/internal/transcribe"
)

// keyVersion changes whenever the key derivation changes.
const keyVersion = "v1"

// Key derives the cache key for opts. The audio file is hashed in full.
func Key(opts transcribe.Options) (string, error) {
	opts = opts.Normalized()

	f, err := os.Open(opts.AudioPath)
	if err != nil {
		return "", fmt.Errorf("open audio for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash audio: %w", err)
	}
	for _, field := range []string{
		keyVersion,
		opts.Model,
		opts.Device,
		opts.ComputeType,
		opts.Language,
		strconv.Itoa(opts.BeamSize),
		strconv.FormatBool(opts.VADFilter),
	} {
		// Length-prefixed so adjacent fields cannot run together.
		fmt.Fprintf(h, "%d:%s;", len(field), field)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
