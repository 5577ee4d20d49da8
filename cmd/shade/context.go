package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/logging"
	"shade/internal/notifications"
	"shade/internal/registry"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the registry for the duration of fn.
func (c *commandContext) withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, store *registry.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := registry.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cmd.Context(), cfg, store)
}

// withCoordinator opens the registry and builds a lifecycle coordinator for
// the duration of fn. CLI invocations log warnings and errors only; the
// daemon is the chatty one.
func (c *commandContext) withCoordinator(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, coord *lifecycle.Coordinator, store *registry.Store) error) error {
	return c.withStore(cmd, func(ctx context.Context, cfg *config.Config, store *registry.Store) error {
		logger, err := logging.New(logging.Options{
			Level:       "warn",
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			return err
		}
		coord := lifecycle.New(cfg, store, notifications.NewService(cfg), logger)
		return fn(ctx, cfg, coord, store)
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
