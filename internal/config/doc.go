// Package config loads, validates, and normalizes shade configuration.
//
// Configuration is TOML with the following sections:
//   - [paths]: library, inbound watch, and log directories
//   - [library]: public base URL used when resolving derivative URLs
//   - [generator]: decode pixel ceiling and JPEG re-encode quality
//   - [sizes]: named size variants as "WIDTHxHEIGHT" specs
//   - [workflow]: watcher settle interval
//   - [notifications]: ntfy topic and per-event toggles
//   - [logging]: format and level
//
// Load applies defaults first, then the file (when present), then path
// expansion and validation, so a missing config file still yields a usable
// configuration.
package config
