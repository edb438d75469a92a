package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file changes,
// until the context is canceled. Editors replace files rather than write
// in place, so the parent directory is watched and events are debounced.
func Watch(ctx context.Context) error {
	cfg := Get()
	path := cfg.ConfigFilePath()
	if path == "" {
		return fmt.Errorf("no config file path to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer func() { _ = watcher.Close() }()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Debounce bursts of events from a single save.
				pending = time.After(250 * time.Millisecond)
			case <-pending:
				pending = nil
				if err := Reload(); err != nil {
					log.Printf("config: reload failed: %v", err)
					continue
				}
				log.Printf("config: reloaded from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config: watch error: %v", err)
			}
		}
	}()

	return nil
}
