package lifecycle

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/imaging"
	"shade/internal/logging"
	"shade/internal/notifications"
	"shade/internal/registry"
)

// Coordinator drives the asset lifecycle: ingest, deletion, and size
// resolution. Every event runs to completion before the next; there is no
// queue and no retry.
type Coordinator struct {
	cfg       *config.Config
	store     *registry.Store
	generator *imaging.Generator
	notifier  notifications.Service
	logger    *slog.Logger
}

// New builds a coordinator over the given store.
func New(cfg *config.Config, store *registry.Store, notifier notifications.Service, logger *slog.Logger) *Coordinator {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		cfg:       cfg,
		store:     store,
		generator: imaging.NewGenerator(cfg),
		notifier:  notifier,
		logger:    logging.WithComponent(logger, "lifecycle"),
	}
}

// FindIngested returns the asset previously ingested from a source file of
// the given name, or nil when the name is unknown. The watcher uses it to
// avoid re-ingesting a file that reappears in the inbound directory.
func (c *Coordinator) FindIngested(ctx context.Context, fileName string) (*asset.Asset, error) {
	return c.store.FindBySourceName(ctx, fileName)
}

// publicURL maps a library-relative path to its public URL.
func (c *Coordinator) publicURL(rel string) string {
	base := strings.TrimRight(c.cfg.Library.PublicBaseURL, "/")
	return base + "/" + path.Clean(strings.ReplaceAll(rel, "\\", "/"))
}
