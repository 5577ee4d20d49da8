package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SizeSpec is a named target bounding box for a size variant.
type SizeSpec struct {
	Label  string
	Width  int
	Height int
}

// ParseSizeSpec parses a "WIDTHxHEIGHT" value.
func ParseSizeSpec(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT", value)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", value)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", value)
	}
	return width, height, nil
}

// SizeSpecs returns the configured size variants sorted by label. The
// reserved "full" label is never included; it is implicit on every asset.
func (c *Config) SizeSpecs() []SizeSpec {
	specs := make([]SizeSpec, 0, len(c.Sizes))
	for label, value := range c.Sizes {
		width, height, err := ParseSizeSpec(value)
		if err != nil {
			// Validate rejects malformed specs at load time.
			continue
		}
		specs = append(specs, SizeSpec{Label: strings.TrimSpace(label), Width: width, Height: height})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Label < specs[j].Label })
	return specs
}
