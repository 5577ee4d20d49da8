// Package daemonrun wires the daemon runtime: logging, pid file, store,
// coordinator, and signal handling. Both shaded and "shade watch" call into
// it so the two entry points cannot drift apart.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"shade/internal/config"
	"shade/internal/daemon"
	"shade/internal/lifecycle"
	"shade/internal/logging"
	"shade/internal/notifications"
	"shade/internal/registry"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run starts the shade daemon runtime loop and blocks until a signal or
// context cancellation stops it.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", filepath.Join(cfg.Paths.LogDir, "shade.log")},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "shade.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := registry.Open(cfg)
	if err != nil {
		logger.Error("open registry store", logging.Error(err))
		return err
	}
	defer store.Close()

	notifier := notifications.NewService(cfg)
	coord := lifecycle.New(cfg, store, notifier, logger)

	d, err := daemon.New(cfg, store, coord, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	logger.Info("shade daemon running",
		logging.String("log", d.LogPath()),
		logging.String("inbound", cfg.Paths.InboundDir))

	// Exit when either a signal arrives or the watch loop dies on its own.
	watchDone := make(chan struct{})
	go func() {
		d.Wait()
		close(watchDone)
	}()

	select {
	case <-signalCtx.Done():
		logger.Info("shade daemon shutting down")
	case <-watchDone:
		logger.Warn("watch loop exited, shutting down")
	}
	d.Stop()
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
