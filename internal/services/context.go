package services

import "context"

type contextKey string

const (
	assetIDKey contextKey = "asset_id"
	eventKey   contextKey = "event"
)

// WithAssetID annotates context with the asset identifier.
func WithAssetID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, assetIDKey, id)
}

// AssetIDFromContext extracts the asset identifier if present.
func AssetIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(assetIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithEvent annotates context with the lifecycle event name (ingest, delete, fetch).
func WithEvent(ctx context.Context, event string) context.Context {
	if event == "" {
		return ctx
	}
	return context.WithValue(ctx, eventKey, event)
}

// EventFromContext returns the lifecycle event name if present.
func EventFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(eventKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
