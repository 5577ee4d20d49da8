// Package watcher ingests images dropped into the inbound directory. Events
// are processed strictly one at a time; a file must be stable for the
// configured settle window before it is ingested, and successful ingests
// remove the inbound file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/logging"
	"shade/internal/services"
)

const settlePollInterval = 250 * time.Millisecond

// Watcher monitors the inbound directory and drives ingestion.
type Watcher struct {
	cfg    *config.Config
	coord  *lifecycle.Coordinator
	logger *slog.Logger
}

// New builds a watcher over the given coordinator.
func New(cfg *config.Config, coord *lifecycle.Coordinator, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		cfg:    cfg,
		coord:  coord,
		logger: logging.WithComponent(logger, "watcher"),
	}
}

// Run watches the inbound directory until the context is canceled. Files
// already present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	inbound := w.cfg.Paths.InboundDir
	if strings.TrimSpace(inbound) == "" {
		return errors.New("inbound directory is not configured")
	}
	if err := os.MkdirAll(inbound, 0o755); err != nil {
		return fmt.Errorf("create inbound directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(inbound); err != nil {
		return fmt.Errorf("watch %s: %w", inbound, err)
	}
	w.logger.InfoContext(ctx, "watching inbound directory", logging.String("dir", inbound))

	if err := w.scanExisting(ctx, inbound); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.handle(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "watch error", logging.Error(err))
		}
	}
}

// scanExisting ingests files that were dropped before the watcher started.
func (w *Watcher) scanExisting(ctx context.Context, inbound string) error {
	entries, err := os.ReadDir(inbound)
	if err != nil {
		return fmt.Errorf("scan inbound directory: %w", err)
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			continue
		}
		w.handle(ctx, filepath.Join(inbound, entry.Name()))
	}
	return nil
}

func (w *Watcher) handle(ctx context.Context, path string) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return
	}
	if _, err := asset.FormatFromPath(path); err != nil {
		w.logger.DebugContext(ctx, "ignoring non-image file", logging.String("file", name))
		return
	}

	existing, err := w.coord.FindIngested(ctx, name)
	if err != nil {
		w.logger.ErrorContext(ctx, "duplicate check failed", logging.String("file", name), logging.Error(err))
		return
	}
	if existing != nil {
		// Leave the file in place so the user can rename or remove it.
		w.logger.WarnContext(ctx, "source already ingested, skipping",
			logging.String("file", name),
			logging.String("asset_id", existing.ID))
		return
	}

	if err := w.waitForSettle(ctx, path); err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logger.WarnContext(ctx, "file never settled", logging.String("file", name), logging.Error(err))
		}
		return
	}

	result, err := w.coord.OnIngest(ctx, path)
	if err != nil {
		// Unsupported and unreadable sources stay in place for inspection.
		if errors.Is(err, services.ErrUnsupportedFormat) || errors.Is(err, services.ErrSourceUnreadable) {
			w.logger.WarnContext(ctx, "ingest skipped", logging.String("file", name), logging.Error(err))
			return
		}
		w.logger.ErrorContext(ctx, "ingest failed", logging.String("file", name), logging.Error(err))
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.logger.WarnContext(ctx, "remove inbound file", logging.String("file", name), logging.Error(err))
	}
	w.logger.InfoContext(ctx, "ingested",
		logging.String("file", name),
		logging.String("asset_id", result.Asset.ID),
		logging.Int("derivatives", len(result.Derivatives)))
}

// waitForSettle blocks until the file's size and mtime stop changing for the
// configured settle window. Uploads via network shares arrive in chunks;
// ingesting early would copy a truncated image.
func (w *Watcher) waitForSettle(ctx context.Context, path string) error {
	window := time.Duration(w.cfg.Workflow.SettleSeconds) * time.Second
	if window <= 0 {
		return nil
	}

	var (
		lastSize  int64 = -1
		lastMod   time.Time
		stableFor time.Duration
	)
	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()

	deadline := time.Now().Add(10 * window)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() == lastSize && info.ModTime().Equal(lastMod) {
			stableFor += settlePollInterval
			if stableFor >= window {
				return nil
			}
		} else {
			lastSize = info.Size()
			lastMod = info.ModTime()
			stableFor = 0
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("file %s did not settle", path)
		}
	}
}
