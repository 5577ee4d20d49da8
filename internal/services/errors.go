package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat marks sources outside the PNG/JPEG allowlist.
	// The coordinator aborts the entire ingest when it sees this marker.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrSourceUnreadable marks missing or corrupt source files. The
	// affected variant is skipped; other variants proceed.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrSizeRejected marks images whose pixel area exceeds the decode
	// ceiling. The affected variant is skipped; other variants proceed.
	ErrSizeRejected = errors.New("size rejected")

	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// SkipsVariant reports whether a generation error should skip the current
// size variant while letting the rest of the ingest continue.
func SkipsVariant(err error) bool {
	return errors.Is(err, ErrSourceUnreadable) || errors.Is(err, ErrSizeRejected)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
