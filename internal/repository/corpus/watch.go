package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Watch reloads the cache whenever the file at path is written or recreated.
// The parent directory is watched so that atomic rename-into-place is seen.
// Blocks until ctx is cancelled.
func (c *Cache) Watch(ctx context.Context, path string) error {
	return c.watch(ctx, path, defaultDebounce, nil)
}

// watch is Watch with a tunable debounce; ready, if non-nil, is closed once
// the watcher is registered.
func (c *Cache) watch(ctx context.Context, path string, debounce time.Duration, ready chan<- struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if ready != nil {
		close(ready)
	}
	c.logger.Info("watching corpus file", zap.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Editors emit several events per save; reload once they settle.
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := c.Reload(ctx); err != nil {
				c.logger.Warn("corpus reload rejected, keeping previous snapshot", zap.Error(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("corpus watcher error", zap.Error(err))
		}
	}
}
