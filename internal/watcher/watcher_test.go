package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shade/internal/lifecycle"
	"shade/internal/logging"
	"shade/internal/registry"
	"shade/internal/testsupport"
	"shade/internal/watcher"
)

func startWatcher(t *testing.T) (*registry.Store, string, context.CancelFunc, chan error) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coord := lifecycle.New(cfg, store, nil, logging.NewNop())
	w := watcher.New(cfg, coord, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()
	t.Cleanup(cancel)
	return store, cfg.Paths.InboundDir, cancel, done
}

func waitForAssets(t *testing.T, store *registry.Store, want int) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		assets, err := store.ListAssets(context.Background())
		if err != nil {
			t.Fatalf("ListAssets: %v", err)
		}
		if len(assets) >= want {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d assets", want)
}

func TestWatcherIngestsDroppedFile(t *testing.T) {
	store, inbound, cancel, done := startWatcher(t)

	path := filepath.Join(inbound, "drop.png")
	testsupport.WriteImage(t, path, 120, 80)

	waitForAssets(t, store, 1)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected inbound file to be removed after ingest")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWatcherIngestsPreexistingFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coord := lifecycle.New(cfg, store, nil, logging.NewNop())

	path := filepath.Join(cfg.Paths.InboundDir, "early.jpg")
	testsupport.WriteImage(t, path, 100, 100)

	w := watcher.New(cfg, coord, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	waitForAssets(t, store, 1)
	cancel()
	<-done
}

func TestWatcherSkipsAlreadyIngestedName(t *testing.T) {
	store, inbound, cancel, done := startWatcher(t)
	defer func() {
		cancel()
		<-done
	}()

	path := filepath.Join(inbound, "repeat.png")
	testsupport.WriteImage(t, path, 80, 60)
	waitForAssets(t, store, 1)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected inbound file to be removed after first ingest")
		}
		time.Sleep(50 * time.Millisecond)
	}

	// The same name reappears; the watcher must not ingest it again.
	testsupport.WriteImage(t, path, 80, 60)
	time.Sleep(500 * time.Millisecond)

	assets, err := store.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected one asset after duplicate drop, got %d", len(assets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected duplicate file left in place: %v", err)
	}
}

func TestWatcherLeavesNonImagesAlone(t *testing.T) {
	store, inbound, cancel, done := startWatcher(t)
	defer func() {
		cancel()
		<-done
	}()

	notes := filepath.Join(inbound, "notes.txt")
	testsupport.WriteFile(t, notes, []byte("not an image"))
	image := filepath.Join(inbound, "real.png")
	testsupport.WriteImage(t, image, 50, 50)

	waitForAssets(t, store, 1)

	if _, err := os.Stat(notes); err != nil {
		t.Fatalf("expected non-image file to stay put: %v", err)
	}
	assets, err := store.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected exactly one asset, got %d", len(assets))
	}
}
