package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"shade/internal/asset"
	"shade/internal/fileutil"
	"shade/internal/imaging"
	"shade/internal/logging"
	"shade/internal/services"
)

// IngestResult reports what an ingest produced. Skipped variants are part of
// normal operation, not failures.
type IngestResult struct {
	Asset       *asset.Asset
	Variants    []asset.Variant
	Derivatives []asset.Derivative
	Skipped     []SkippedVariant
}

// SkippedVariant names a size variant that produced no derivative and why.
type SkippedVariant struct {
	Label  string
	Reason string
}

// OnIngest copies a source image into the library, materializes the
// configured size variants, and generates a grayscale derivative for each.
//
// SizeRejected and SourceUnreadable skip the affected variant and continue;
// partial results are expected. A source outside the PNG/JPEG allowlist
// aborts the whole ingest before anything is copied. When the original
// itself exceeds the pixel ceiling the asset is still registered, with no
// variants and no derivatives, so fetches resolve to the original.
func (c *Coordinator) OnIngest(ctx context.Context, sourcePath string) (*IngestResult, error) {
	ctx = services.WithEvent(ctx, "ingest")

	format, err := asset.FormatFromPath(sourcePath)
	if err != nil {
		wrapped := services.Wrap(services.ErrUnsupportedFormat, "lifecycle", "ingest", sourcePath, err)
		_ = c.notifier.NotifyIngestSkipped(ctx, filepath.Base(sourcePath), "unsupported format")
		return nil, wrapped
	}

	width, height, detected, err := c.generator.Probe(sourcePath)
	if err != nil {
		_ = c.notifier.NotifyError(ctx, err, "ingest")
		return nil, err
	}
	if detected != format {
		return nil, services.Wrap(services.ErrSourceUnreadable, "lifecycle", "ingest",
			fmt.Sprintf("%s: extension says %s but file is %s", sourcePath, format, detected), nil)
	}

	id := uuid.NewString()
	ctx = services.WithAssetID(ctx, id)
	title := asset.TitleFromPath(sourcePath)
	fileName := filepath.Base(sourcePath)
	relSource := path.Join(id, fileName)

	assetDir := filepath.Join(c.store.LibraryDir(), id)
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}
	if err := fileutil.CopyFileVerified(sourcePath, filepath.Join(assetDir, fileName)); err != nil {
		_ = os.RemoveAll(assetDir)
		return nil, services.Wrap(services.ErrSourceUnreadable, "lifecycle", "ingest", "copy into library", err)
	}

	record, err := c.store.NewAssetWithID(ctx, id, title, relSource, format, width, height)
	if err != nil {
		_ = os.RemoveAll(assetDir)
		return nil, err
	}

	c.logger.InfoContext(ctx, "asset registered",
		logging.String("title", title),
		logging.Int("width", width),
		logging.Int("height", height))

	result := &IngestResult{Asset: record}
	full := asset.Variant{Label: asset.FullLabel, Path: relSource, Width: width, Height: height}

	if ceiling := c.generator.PixelCeiling(); full.PixelArea() > ceiling {
		c.logger.WarnContext(ctx, "original exceeds pixel ceiling, no derivatives generated",
			logging.Int("area", full.PixelArea()),
			logging.Int("ceiling", ceiling))
		result.Skipped = append(result.Skipped, SkippedVariant{
			Label:  asset.FullLabel,
			Reason: fmt.Sprintf("pixel area %d exceeds ceiling %d", full.PixelArea(), ceiling),
		})
		_ = c.notifier.NotifyIngestCompleted(ctx, title, 0)
		return result, nil
	}

	variants := c.materializeVariants(ctx, result, full, format)
	c.generateDerivatives(ctx, result, variants, format)

	c.logger.InfoContext(ctx, "ingest complete",
		logging.Int("variants", len(result.Variants)),
		logging.Int("derivatives", len(result.Derivatives)),
		logging.Int("skipped", len(result.Skipped)))
	_ = c.notifier.NotifyIngestCompleted(ctx, title, len(result.Derivatives))
	return result, nil
}

// materializeVariants writes resized renditions for every configured size
// and records them. The "full" variant is the original file itself.
func (c *Coordinator) materializeVariants(ctx context.Context, result *IngestResult, full asset.Variant, format asset.Format) []asset.Variant {
	variants := []asset.Variant{full}
	if err := c.store.RecordVariant(ctx, result.Asset.ID, full); err != nil {
		c.logger.ErrorContext(ctx, "record full variant", logging.Error(err))
	}

	absSource := c.store.AbsolutePath(full.Path)
	for _, spec := range c.cfg.SizeSpecs() {
		fitW, fitH := imaging.FitDimensions(full.Width, full.Height, spec.Width, spec.Height)
		if fitW == full.Width && fitH == full.Height {
			// Already inside the box; the full variant covers it.
			continue
		}
		encoded, err := c.generator.GenerateResized(absSource, format, spec.Width, spec.Height)
		if err != nil {
			if services.SkipsVariant(err) {
				c.skipVariant(ctx, result, spec.Label, err)
				continue
			}
			c.logger.ErrorContext(ctx, "resize variant failed",
				logging.String("label", spec.Label), logging.Error(err))
			continue
		}

		relVariant := asset.VariantPath(full.Path, encoded.Width, encoded.Height)
		if err := fileutil.WriteAtomic(c.store.AbsolutePath(relVariant), encoded.Data); err != nil {
			c.logger.ErrorContext(ctx, "write variant failed",
				logging.String("label", spec.Label), logging.Error(err))
			continue
		}
		v := asset.Variant{Label: spec.Label, Path: relVariant, Width: encoded.Width, Height: encoded.Height}
		if err := c.store.RecordVariant(ctx, result.Asset.ID, v); err != nil {
			c.logger.ErrorContext(ctx, "record variant failed",
				logging.String("label", spec.Label), logging.Error(err))
			continue
		}
		variants = append(variants, v)
	}
	result.Variants = variants
	return variants
}

// generateDerivatives runs the grayscale pass over each materialized variant.
func (c *Coordinator) generateDerivatives(ctx context.Context, result *IngestResult, variants []asset.Variant, format asset.Format) {
	for _, v := range variants {
		encoded, err := c.generator.Generate(c.store.AbsolutePath(v.Path), format)
		if err != nil {
			if services.SkipsVariant(err) {
				c.skipVariant(ctx, result, v.Label, err)
				continue
			}
			c.logger.ErrorContext(ctx, "grayscale generation failed",
				logging.String("label", v.Label), logging.Error(err))
			continue
		}

		relDerivative := asset.DerivativePath(v.Path)
		if err := fileutil.WriteAtomic(c.store.AbsolutePath(relDerivative), encoded.Data); err != nil {
			c.logger.ErrorContext(ctx, "write derivative failed",
				logging.String("label", v.Label), logging.Error(err))
			continue
		}

		d := asset.Derivative{Label: v.Label, Path: relDerivative, Width: encoded.Width, Height: encoded.Height}
		if err := c.store.Record(ctx, result.Asset.ID, d); err != nil {
			c.logger.ErrorContext(ctx, "record derivative failed",
				logging.String("label", v.Label), logging.Error(err))
			continue
		}
		result.Derivatives = append(result.Derivatives, d)
	}
}

func (c *Coordinator) skipVariant(ctx context.Context, result *IngestResult, label string, err error) {
	c.logger.DebugContext(ctx, "variant skipped",
		logging.String("label", label), logging.Error(err))
	result.Skipped = append(result.Skipped, SkippedVariant{Label: label, Reason: err.Error()})
}
