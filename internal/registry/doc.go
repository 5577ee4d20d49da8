// Package registry persists the asset ledger: one row per ingested asset,
// plus its size variants and the grayscale derivatives generated for them.
// Storage is SQLite. All file paths are stored relative to the configured
// library directory so the library can be relocated without rewriting rows.
package registry
