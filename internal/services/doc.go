// Package services defines shared utilities consumed by the lifecycle
// coordinator and its collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp asset identifiers and lifecycle event names
//     for logging.
//   - Structured error markers plus the Wrap helper that classify generation
//     failures (unsupported format, unreadable source, size rejection) so the
//     coordinator can decide between skipping a variant and aborting an ingest.
package services
