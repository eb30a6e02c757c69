// Package watch reloads the dataset when its CSV file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/JonMunkholm/lifecharts/internal/core"
	"github.com/JonMunkholm/lifecharts/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// Reloader is implemented by *core.Store.
type Reloader interface {
	Reload(ctx context.Context) (*core.Dataset, error)
}

// Stats counts watcher activity.
type Stats struct {
	Events   int
	Reloads  int
	Failures int
}

// Watcher triggers a debounced reload whenever the watched file is written,
// created or renamed into place.
type Watcher struct {
	path     string
	reloader Reloader
	debounce time.Duration

	mu    sync.Mutex
	stats Stats
}

// New returns a watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, reloader Reloader, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		reloader: reloader,
		debounce: debounce,
	}
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run watches the file's directory until ctx is done. Editors often replace
// files with a rename, so the directory is watched rather than the file.
// Reload failures are logged and the watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := logging.WithFields(ctx, "component", "watcher", "path", w.path)
	logger.Info("watching data file", "debounce", w.debounce.String())

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.count(func(s *Stats) { s.Events++ })
			logger.Debug("data file changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			if _, err := w.reloader.Reload(ctx); err != nil {
				w.count(func(s *Stats) { s.Failures++ })
				logger.Warn("reload after change failed, keeping previous dataset", "error", err)
				continue
			}
			w.count(func(s *Stats) { s.Reloads++ })
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) count(update func(*Stats)) {
	w.mu.Lock()
	update(&w.stats)
	w.mu.Unlock()
}
