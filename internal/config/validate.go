package config

import (
	"fmt"
	"strings"
)

// ReservedFullLabel is the size label naming the unresized original. It is
// implicit on every asset and may not be redefined in [sizes].
const ReservedFullLabel = "full"

// Validate checks semantic constraints that normalization cannot repair.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return fmt.Errorf("paths.library_dir is required")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("paths.log_dir is required")
	}
	if c.Paths.InboundDir != "" && c.Paths.InboundDir == c.Paths.LibraryDir {
		return fmt.Errorf("paths.inbound_dir must differ from paths.library_dir")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}

	for label, spec := range c.Sizes {
		if strings.EqualFold(strings.TrimSpace(label), ReservedFullLabel) {
			return fmt.Errorf("sizes.%s: label %q is reserved for the original", label, ReservedFullLabel)
		}
		if _, _, err := ParseSizeSpec(spec); err != nil {
			return fmt.Errorf("sizes.%s: %w", label, err)
		}
	}
	return nil
}
