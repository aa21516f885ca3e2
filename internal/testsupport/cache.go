package testsupport

import (
	"testing"

	"fwtranscribe/internal/cache"
	"fwtranscribe/internal/config"
)

// MustOpenCache opens the transcript cache configured in cfg and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *cache.Store {
	t.Helper()

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
