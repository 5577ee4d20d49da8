package asset

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FullLabel names the unresized original. Every asset has it implicitly.
const FullLabel = "full"

// Format identifies a supported image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat normalizes a format or extension string into a Format.
// Anything outside the PNG/JPEG allowlist is rejected.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(value, ".")))
	switch normalized {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("format %q is not supported", value)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("path %q has no extension", path)
	}
	return ParseFormat(ext)
}

// Extension returns the canonical file extension, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	default:
		return string(f)
	}
}

// Asset is an image tracked in the registry. SourcePath is stored relative
// to the library directory.
type Asset struct {
	ID         string
	Title      string
	SourcePath string
	Format     Format
	Width      int
	Height     int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Variant is a named sized rendition of an asset. The "full" variant is the
// original file itself.
type Variant struct {
	Label  string
	Path   string
	Width  int
	Height int
}

// Derivative is the grayscale file generated for one size variant.
type Derivative struct {
	Label     string
	Path      string
	Width     int
	Height    int
	CreatedAt time.Time
}

// PixelArea returns width*height for ceiling checks.
func (v Variant) PixelArea() int {
	return v.Width * v.Height
}

// TitleFromPath derives a display title from a source filename. Separator
// runs (spaces, dashes, underscores, dots) collapse to single spaces and the
// result is title-cased.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(title)
}
