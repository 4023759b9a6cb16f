package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WaitForFile blocks until path exists and has seen no create/write
// activity for one settle window. Build pipelines hand firmware images to
// the transfer tool while they are still being written; starting the
// protocol against a half-written file wastes the receiver's retry
// budget, so the CLI waits for the file to go quiet first.
func WaitForFile(ctx context.Context, path string, settle time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the file itself may not exist yet.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	timer := time.NewTimer(settle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-watcher.Events:
			if ev.Name == path && ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				// Still being written; restart the settle window.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(settle)
			}
		case err := <-watcher.Errors:
			return fmt.Errorf("watch %s: %w", dir, err)
		case <-timer.C:
			if _, err := os.Stat(path); err == nil {
				return nil
			}
			// Not there yet; keep waiting for the create event.
			timer.Reset(settle)
		}
	}
}
