package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/classcanvas/internal/ctxlog"
	"github.com/vk/classcanvas/internal/fsutil"
	"github.com/vk/classcanvas/internal/uml"
)

// watchStatus records the outcome of watch refreshes for the health check.
type watchStatus struct {
	mu        sync.Mutex
	refreshes int
	last      time.Time
	lastStats uml.Stats
	lastErr   error
}

func (s *watchStatus) record(stats uml.Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	s.last = time.Now()
	s.lastStats = stats
	s.lastErr = err
}

// Watch refreshes the canvas once, then again every time a header or
// implementation file under the source root changes. Changes closer together
// than the debounce interval cause a single refresh. Refreshes never run
// concurrently. Watch returns when ctx is cancelled or the process receives
// SIGINT or SIGTERM.
func (a *App) Watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.ctx = ctx
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	root := a.project.Source.Root
	dirs, err := fsutil.Dirs(root)
	if err != nil {
		return fmt.Errorf("failed to list source directories under %s: %w", root, err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Failed to watch directory.", "path", dir, "error", err)
			continue
		}
		logger.Debug("Watching directory.", "path", dir)
	}

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer(a.config.HealthcheckPort)
		defer a.closeHealthCheckServer()
	}

	a.refreshOnce(ctx)
	logger.Info("Watching for header changes.", "root", root, "directories", len(dirs), "debounce", a.config.Debounce)

	trigger := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err == nil {
						logger.Debug("Watching new directory.", "path", event.Name)
					}
					continue
				}
			}
			if !a.isSourceFile(event.Name) {
				continue
			}
			logger.Debug("Source file changed.", "path", event.Name, "operation", event.Op.String())
			a.scanner.Forget(event.Name)

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(a.config.Debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error.", "error", err)

		case <-trigger:
			a.refreshOnce(ctx)
		}
	}
}

func (a *App) refreshOnce(ctx context.Context) {
	stats, err := a.Refresh(ctx)
	a.status.record(stats, err)
	if err != nil {
		ctxlog.FromContext(ctx).Error("Refresh failed.", "error", err)
	}
}

func (a *App) isSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, exts := range [][]string{a.project.Source.HeaderExts, a.project.Source.ImplExts} {
		if _, ok := fsutil.NormalizeExtensions(exts)[ext]; ok {
			return true
		}
	}
	return false
}
