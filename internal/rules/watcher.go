package rules

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long a changed rule file must stay quiet before a
// reload is attempted. Editors often produce several write events per save.
const debounceDelay = 250 * time.Millisecond

// Watcher monitors a rule-table file and delivers freshly loaded Tables
// snapshots when the file changes. A snapshot that fails to parse or
// validate is logged and skipped; the previous tables stay in effect.
type Watcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	updates chan *Tables

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the given rule-table file.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go silent.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:    filepath.Clean(path),
		logger:  logger,
		watcher: fw,
		updates: make(chan *Tables, 1),
	}, nil
}

// Updates returns the channel on which reloaded tables are delivered.
func (w *Watcher) Updates() <-chan *Tables {
	return w.updates
}

// Start processes file events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("rule watcher error", "error", err)
		}
	}
}

// Stop releases the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// scheduleReload debounces bursts of write events into a single reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	tables, err := Load(w.path)
	if err != nil {
		w.logger.Warn("rule table reload failed, keeping previous tables",
			"path", w.path,
			"error", err,
		)
		return
	}

	w.logger.Info("rule tables reloaded",
		"path", w.path,
		"conflicts", len(tables.Conflicts()),
	)

	// Drop a stale pending snapshot so the consumer always sees the newest.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- tables
}
