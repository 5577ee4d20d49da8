// Package daemon runs the watch loop as a long-lived background service with
// flock-enforced single-instance execution.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"shade/internal/config"
	"shade/internal/lifecycle"
	"shade/internal/logging"
	"shade/internal/registry"
	"shade/internal/watcher"
)

// Daemon owns the watch loop and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *registry.Store
	coord   *lifecycle.Coordinator
	watch   *watcher.Watcher
	logPath string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// Status represents daemon runtime information.
type Status struct {
	Running        bool
	InboundDir     string
	RegistryDBPath string
	LockFilePath   string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *registry.Store, coord *lifecycle.Coordinator, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || coord == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, coordinator, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "shaded.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		store:    store,
		coord:    coord,
		watch:    watcher.New(cfg, coord, logger),
		logPath:  filepath.Join(cfg.Paths.LogDir, "shade.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the watch loop.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another shade daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go func() {
		defer close(d.done)
		if err := d.watch.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("watch loop exited", logging.Error(err))
		}
	}()

	d.logger.Info("shade daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop cancels the watch loop and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.done != nil {
		<-d.done
		d.done = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("shade daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Wait blocks until the watch loop exits.
func (d *Daemon) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:        d.running.Load(),
		InboundDir:     d.cfg.Paths.InboundDir,
		RegistryDBPath: filepath.Join(d.cfg.Paths.LogDir, "registry.db"),
		LockFilePath:   d.lockPath,
	}
}
