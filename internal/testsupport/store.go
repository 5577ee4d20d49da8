package testsupport

import (
	"context"
	"testing"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/registry"
)

// MustOpenStore opens a registry.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *registry.Store {
	t.Helper()

	store, err := registry.Open(cfg)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewAsset creates a new asset row for tests using the provided store.
func NewAsset(t testing.TB, store *registry.Store, title, sourcePath string, format asset.Format, width, height int) *asset.Asset {
	t.Helper()

	record, err := store.NewAsset(context.Background(), title, sourcePath, format, width, height)
	if err != nil {
		t.Fatalf("store.NewAsset: %v", err)
	}
	return record
}
