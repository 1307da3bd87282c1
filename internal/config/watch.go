package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 250 * time.Millisecond

// Watcher reports edits to a settings file. Bursts of writes within the
// debounce window collapse into one notification.
type Watcher struct {
	log      *zap.Logger
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan struct{}
}

// NewWatcher watches the directory holding path so that editors which
// replace the file on save are still seen.
func NewWatcher(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		log:      log,
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes delivers at most one pending notification at a time.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start runs the event loop until ctx is done or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	timer := time.NewTimer(0)
	<-timer.C

	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.relevant(event) {
					w.log.Debug("settings change detected",
						zap.String("file", event.Name),
						zap.String("op", event.Op.String()))
					timer.Reset(w.debounce)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Error("settings watcher error", zap.Error(err))

			case <-timer.C:
				select {
				case w.changes <- struct{}{}:
				default:
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
