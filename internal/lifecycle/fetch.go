package lifecycle

import (
	"context"

	"shade/internal/asset"
	"shade/internal/logging"
	"shade/internal/services"
	"shade/internal/sizereq"
)

// Resolution is the answer to a size request: where to fetch the image and
// what it looks like. UseOriginal means no grayscale derivative exists for
// the request and the caller should serve the original asset data.
type Resolution struct {
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	IsDownsized bool   `json:"is_downsized"`
	UseOriginal bool   `json:"use_original"`
}

// OnFetch resolves a raw size request against an asset. Grayscale requests
// ("grayscale" or "grayscale:<label>") resolve through the registry with
// fallback to the full derivative; plain requests resolve to the recorded
// size variant. Unknown labels degrade to the original rather than erroring.
func (c *Coordinator) OnFetch(ctx context.Context, assetID, rawRequest string) (*Resolution, error) {
	ctx = services.WithEvent(ctx, "fetch")
	ctx = services.WithAssetID(ctx, assetID)

	record, err := c.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, services.Wrap(services.ErrNotFound, "lifecycle", "fetch", assetID, nil)
	}

	req := sizereq.Parse(rawRequest)
	if !req.IsGrayscale() {
		return c.resolvePlain(ctx, record, req.Label)
	}

	d, err := c.store.Lookup(ctx, assetID, req.Label)
	if err != nil {
		return nil, err
	}
	if d == nil {
		c.logger.DebugContext(ctx, "no grayscale derivative, using original",
			logging.String("request", req.String()))
		return c.originalResolution(record, true), nil
	}

	return &Resolution{
		URL:         c.publicURL(d.Path),
		Width:       d.Width,
		Height:      d.Height,
		IsDownsized: d.Label != asset.FullLabel,
	}, nil
}

func (c *Coordinator) resolvePlain(ctx context.Context, record *asset.Asset, label string) (*Resolution, error) {
	if label == "" || label == asset.FullLabel {
		return c.originalResolution(record, false), nil
	}
	v, err := c.store.Variant(ctx, record.ID, label)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return c.originalResolution(record, false), nil
	}
	return &Resolution{
		URL:         c.publicURL(v.Path),
		Width:       v.Width,
		Height:      v.Height,
		IsDownsized: true,
	}, nil
}

func (c *Coordinator) originalResolution(record *asset.Asset, useOriginal bool) *Resolution {
	return &Resolution{
		URL:         c.publicURL(record.SourcePath),
		Width:       record.Width,
		Height:      record.Height,
		UseOriginal: useOriginal,
	}
}

// VariantListing is one row of the client-facing variant enumeration.
type VariantListing struct {
	Label        string `json:"label"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	GrayscaleURL string `json:"grayscale_url,omitempty"`
}

// Variants enumerates every recorded size variant of an asset with its
// grayscale URL when a derivative exists.
func (c *Coordinator) Variants(ctx context.Context, assetID string) ([]VariantListing, error) {
	record, err := c.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, services.Wrap(services.ErrNotFound, "lifecycle", "variants", assetID, nil)
	}

	variants, err := c.store.Variants(ctx, assetID)
	if err != nil {
		return nil, err
	}
	derivatives, err := c.store.Derivatives(ctx, assetID)
	if err != nil {
		return nil, err
	}
	grayByLabel := make(map[string]asset.Derivative, len(derivatives))
	for _, d := range derivatives {
		grayByLabel[d.Label] = d
	}

	listings := make([]VariantListing, 0, len(variants))
	for _, v := range variants {
		listing := VariantListing{
			Label:  v.Label,
			URL:    c.publicURL(v.Path),
			Width:  v.Width,
			Height: v.Height,
		}
		if d, ok := grayByLabel[v.Label]; ok {
			listing.GrayscaleURL = c.publicURL(d.Path)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
