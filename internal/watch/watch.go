// Package watch reruns work when a file changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls run each time the file at path is written or replaced, until ctx
// is done. Failures of run are logged and do not stop watching. Watch returns
// nil when ctx is done or the watcher closes, or an error if the file's
// directory cannot be watched.
func Watch(ctx context.Context, path string, logger *log.Logger, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files rather than writing them, which drops
	// watches on the file itself. Watch its directory instead.
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Printf("%s changed", path)
			if err := run(); err != nil {
				logger.Printf("run failed: %v", err)
			} else {
				logger.Print("rerun complete")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watcher error: %v", err)
		}
	}
}
