package testsupport

import (
	"path/filepath"
	"testing"

	"shade/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.InboundDir = filepath.Join(base, "inbound")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Library.PublicBaseURL = "http://media.test"
	cfg.Notifications.NtfyTopic = ""
	cfg.Workflow.SettleSeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithSizes replaces the configured size variants on the test config.
func WithSizes(sizes map[string]string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sizes = sizes
	}
}

// WithPixelCeiling overrides the decode ceiling on the test config.
func WithPixelCeiling(ceiling int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Generator.PixelCeiling = ceiling
	}
}

// WithNtfyTopic points notifications at the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}
