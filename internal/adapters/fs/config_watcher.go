// Package fs holds filesystem adapters.
package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/rockpapershock/internal/ports"
)

// ConfigWatcher logs a warning when a credential source changes on disk.
// Credentials are fixed for the session, so a change only takes effect on
// the next start.
type ConfigWatcher struct {
	logger  ports.Logger
	files   map[string]bool
	onEvent func(path string)

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewConfigWatcher watches the given files. Empty paths are ignored.
// onEvent, if non-nil, is called after each logged change.
func NewConfigWatcher(logger ports.Logger, onEvent func(path string), paths ...string) *ConfigWatcher {
	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		files[filepath.Clean(p)] = true
	}
	return &ConfigWatcher{logger: logger, files: files, onEvent: onEvent}
}

// Start begins watching the parent directories of the configured files.
// Editors often replace files rather than writing in place, so directories
// are watched instead of the files themselves.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	if len(w.files) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dirs := map[string]bool{}
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	added := 0
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			w.logger.Debug("config watcher: skip directory", ports.String("dir", d), ports.Err(err))
			continue
		}
		added++
	}
	if added == 0 {
		watcher.Close()
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.watcher = watcher
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(watchCtx)
	return nil
}

// Stop ends the watch loop and releases the watcher.
func (w *ConfigWatcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	w.watcher.Close()
}

func (w *ConfigWatcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Warn("configuration changed on disk; restart to apply",
				ports.String("file", event.Name),
				ports.String("op", event.Op.String()),
			)
			if w.onEvent != nil {
				w.onEvent(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", ports.Err(err))
		}
	}
}
