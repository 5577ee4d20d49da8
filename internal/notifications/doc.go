// Package notifications delivers lifecycle events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set.
// Individual event classes (ingest, deletion, errors) can be toggled in
// configuration so lifecycle code never needs to check them itself.
//
// Extend this package if you need alternative transports; all lifecycle code
// depends only on the simple Service interface.
package notifications
