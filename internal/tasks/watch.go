package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// DefaultWatchDebounce collapses the burst of events a single save produces.
const DefaultWatchDebounce = 150 * time.Millisecond

// Watch calls fn with the content of path once at start and again after every change,
// until ctx is done.
//
// The parent directory is watched rather than the file so editors that save by
// writing a temp file and renaming it over the original are still seen. Events are
// debounced, and fn is skipped when the content hash did not change.
func (e *Engine) Watch(ctx context.Context, prog chan<- ProgressUpdate, path string, debounce time.Duration, fn func(content string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	lastHash := shared.ContentHash(string(data))
	changes := 0
	fn(string(data))
	e.sendProgress(prog, watchUpdate(changes, abs))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fire = time.After(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			e.logger.Error("watcher error", "path", abs, "error", err)

		case <-fire:
			fire = nil

			data, err := os.ReadFile(abs)
			if err != nil {
				// Mid-rename; the Create that follows re-arms the timer.
				e.logger.Debug("file not readable yet", "path", abs, "error", err)
				continue
			}

			hash := shared.ContentHash(string(data))
			if hash == lastHash {
				continue
			}
			lastHash = hash
			changes++

			e.logger.Debug("file changed", "path", abs, "changes", changes)
			fn(string(data))
			e.sendProgress(prog, watchUpdate(changes, abs))
		}
	}
}
