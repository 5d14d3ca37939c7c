package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the settings file whenever it changes on disk and hands the
// result to onChange. The parent directory is watched rather than the file
// itself so that editors which save by rename are picked up too. Invalid
// files are logged and skipped. Watch returns once the watcher is running;
// it stops when ctx is done.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(*Config)) error {
	if path == "" {
		return fmt.Errorf("watch config: no path")
	}
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		debounce := time.NewTimer(reloadDebounce)
		debounce.Stop()
		name := filepath.Clean(path)

		for {
			select {
			case <-ctx.Done():
				debounce.Stop()
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounce.Reset(reloadDebounce)

			case <-debounce.C:
				cfg, err := LoadFrom(path)
				if err != nil {
					log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path), zap.String("theme", cfg.Theme))
				onChange(cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug("config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
