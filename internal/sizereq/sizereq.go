// Package sizereq parses size-resolution request labels. The wire grammar is
// string-based for compatibility: a plain label ("thumbnail"), the bare word
// "grayscale" (meaning the full-size derivative), or "grayscale:<label>".
// Parsing happens once at the boundary; everything downstream works with the
// tagged Request type.
package sizereq

import "strings"

// Kind discriminates the request variants.
type Kind int

const (
	// KindPlain requests the ordinary (color) rendition of a label.
	KindPlain Kind = iota
	// KindGrayscale requests the full-size grayscale derivative.
	KindGrayscale
	// KindGrayscaleOf requests the grayscale derivative of a named label.
	KindGrayscaleOf
)

const (
	grayscaleWord   = "grayscale"
	grayscalePrefix = grayscaleWord + ":"
)

// Request is a parsed size-resolution request.
type Request struct {
	Kind  Kind
	Label string
}

// Parse interprets a raw request label.
func Parse(raw string) Request {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, grayscaleWord) {
		return Request{Kind: KindGrayscale}
	}
	if len(trimmed) > len(grayscalePrefix) && strings.EqualFold(trimmed[:len(grayscalePrefix)], grayscalePrefix) {
		label := strings.TrimSpace(trimmed[len(grayscalePrefix):])
		if label != "" {
			return Request{Kind: KindGrayscaleOf, Label: label}
		}
		return Request{Kind: KindGrayscale}
	}
	return Request{Kind: KindPlain, Label: trimmed}
}

// IsGrayscale reports whether the request asks for a grayscale derivative.
func (r Request) IsGrayscale() bool {
	return r.Kind == KindGrayscale || r.Kind == KindGrayscaleOf
}

// String renders the request back into its wire form.
func (r Request) String() string {
	switch r.Kind {
	case KindGrayscale:
		return grayscaleWord
	case KindGrayscaleOf:
		return grayscalePrefix + r.Label
	default:
		return r.Label
	}
}
