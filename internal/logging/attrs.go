package logging

import "log/slog"

// Error wraps an error for structured logging under the conventional key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// String mirrors slog.String for symmetry with Error.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int mirrors slog.Int.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Bool mirrors slog.Bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// WithComponent returns a child logger whose console output is prefixed with
// the component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil || component == "" {
		return logger
	}
	return logger.With(slog.String(FieldComponent, component))
}
