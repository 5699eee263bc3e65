package devserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lsy641/notes2html/internal/fileutil"
)

const defaultDebounce = 100 * time.Millisecond

// reloadExtensions are the file types whose change reloads viewers.
var reloadExtensions = []string{".html", ".css", ".js"}

// Watcher turns file changes under a root into rebuilds and reloads.
type Watcher struct {
	root     string
	fs       *fsnotify.Watcher
	hub      *Hub
	builder  Builder
	logger   *zap.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for root. A nil builder leaves markdown
// changes alone.
func NewWatcher(root string, hub *Hub, builder Builder, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		root:     root,
		fs:       fsw,
		hub:      hub,
		builder:  builder,
		logger:   logger,
		debounce: defaultDebounce,
	}, nil
}

// Start watches root recursively and handles events until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watchDirRecursive(w.root); err != nil {
		return err
	}
	go w.eventLoop(ctx)
	return nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// watchDirRecursive adds dir and its subdirectories, skipping hidden ones.
func (w *Watcher) watchDirRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// eventLoop collects changed paths and handles them together once no
// event has arrived for the debounce interval.
func (w *Watcher) eventLoop(ctx context.Context) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if isHidden(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) && fileutil.DirExists(event.Name) {
				if err := w.watchDirRecursive(event.Name); err != nil {
					w.logger.Warn("cannot watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
				continue
			}
			if !fileutil.IsMarkdown(event.Name) && !slices.Contains(reloadExtensions, strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			w.handleChanges(ctx, pending)
			clear(pending)
		}
	}
}

// handleChanges rebuilds markdown and publishes one reload for any changed
// page, stylesheet or script. A rebuilt page reloads viewers through its
// own write event.
func (w *Watcher) handleChanges(ctx context.Context, changed map[string]struct{}) {
	paths := make([]string, 0, len(changed))
	for p := range changed {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	reload := false
	for _, path := range paths {
		rel := w.relative(path)
		if fileutil.IsMarkdown(path) {
			if w.builder == nil {
				continue
			}
			out, err := w.builder.Build(ctx, path)
			if err != nil {
				w.logger.Error("rebuild failed", zap.String("file", rel), zap.Error(err))
				continue
			}
			w.logger.Info("rebuilt", zap.String("file", rel), zap.String("output", w.relative(out)))
			continue
		}
		w.logger.Info("changed", zap.String("file", rel))
		reload = true
	}

	if reload {
		w.hub.Publish(ReloadMessage)
	}
}

func (w *Watcher) relative(path string) string {
	if rel, err := filepath.Rel(w.root, path); err == nil {
		return rel
	}
	return path
}

// isHidden reports whether the base name starts with a dot.
func isHidden(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
