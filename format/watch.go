package format

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settleDelay batches rapid successive writes to the same file into one pass.
const settleDelay = 100 * time.Millisecond

// Watcher rewrites matching files in place as they change on disk.
type Watcher struct {
	cfg      Config
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	dirs     []string
	watching atomic.Bool
}

// NewWatcher prepares a watcher over the given directory roots. Start must be
// called before any events are handled.
func NewWatcher(cfg Config, logger *zap.Logger, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		cfg:     cfg,
		logger:  logger,
		watcher: w,
		dirs:    dirs,
	}, nil
}

// Start registers every directory under the configured roots and begins
// handling events. A rewrite triggers one more event for the same file; the
// second pass finds nothing to change and does not write, so the loop settles.
func (w *Watcher) Start() error {
	if w.watching.Load() {
		return fmt.Errorf("already watching")
	}

	for _, dir := range w.dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.watching.Store(true)
	go w.watchLoop()
	return nil
}

func (w *Watcher) Stop() error {
	w.watching.Store(false)
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.watching.Load() {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error("watch error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !w.matchesExtension(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(settleDelay)

	r := File(event.Name, w.cfg)
	if err := Apply(r); err != nil {
		if w.logger != nil {
			w.logger.Error("failed to rewrite file", zap.String("path", event.Name), zap.Error(err))
		}
		return
	}

	if w.logger != nil && r.Changed() {
		w.logger.Info("rewrote file",
			zap.String("path", event.Name),
			zap.Int("changes", len(r.Changes)))
	}
}

func (w *Watcher) matchesExtension(name string) bool {
	for _, ext := range w.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
