package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shade/internal/logging"
	"shade/internal/services"
)

// OnDelete removes every registry entry and derivative file for an asset.
// Missing derivative files are tolerated. When purge is set, the asset's
// library directory (original and variants included) is removed as well.
func (c *Coordinator) OnDelete(ctx context.Context, assetID string, purge bool) error {
	ctx = services.WithEvent(ctx, "delete")
	ctx = services.WithAssetID(ctx, assetID)

	record, err := c.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if record == nil {
		return services.Wrap(services.ErrNotFound, "lifecycle", "delete", assetID, nil)
	}

	deleted, err := c.store.DeleteAll(ctx, assetID)
	if err != nil {
		_ = c.notifier.NotifyError(ctx, err, "delete")
		return err
	}
	if !deleted {
		return services.Wrap(services.ErrNotFound, "lifecycle", "delete", assetID, nil)
	}

	if purge {
		assetDir := filepath.Join(c.store.LibraryDir(), assetID)
		if err := os.RemoveAll(assetDir); err != nil {
			return fmt.Errorf("purge asset directory: %w", err)
		}
	}

	c.logger.InfoContext(ctx, "asset deleted",
		logging.String("title", record.Title),
		logging.Bool("purged", purge))
	_ = c.notifier.NotifyAssetDeleted(ctx, record.Title)
	return nil
}
