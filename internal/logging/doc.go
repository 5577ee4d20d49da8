// Package logging builds slog loggers with shade's console and JSON output
// formats. Console output is a single line per record: UTC timestamp, level,
// optional component prefix, message, then key=value attributes.
package logging
