// Package watch surfaces debounced change notifications for a fixed set of
// files. The parent directories are watched rather than the files
// themselves, so editors that replace a file on save are still observed.
package watch

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher batches file system events for a set of files and emits the
// changed paths after a quiet period.
type Watcher struct {
	paths    map[string]struct{}
	debounce time.Duration
	logger   *slog.Logger

	fsw      *fsnotify.Watcher
	changes  chan string
	batches  chan []string
	done     chan struct{}
	stopOnce sync.Once
}

// New prepares a watcher for the given files. Paths are made absolute so
// events match regardless of how the caller spelled them.
func New(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		set[abs] = struct{}{}
	}
	return &Watcher{
		paths:    set,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		changes:  make(chan string, 64),
		batches:  make(chan []string),
		done:     make(chan struct{}),
	}, nil
}

// Changes delivers one sorted, deduplicated batch per quiet period.
func (w *Watcher) Changes() <-chan []string {
	return w.batches
}

// Start registers the parent directories of the configured files and begins
// emitting batches. It returns once registration is done.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.logger.Debug("watching directory", "dir", dir)
	}
	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop ends watching and releases the underlying notifier. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if _, tracked := w.paths[path]; !tracked {
				continue
			}
			w.logger.Debug("file event", "path", path, "op", event.Op.String())
			select {
			case w.changes <- path:
			default:
				// Buffer full; the debouncer will pick the path up from
				// a later event.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var batch []string
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			select {
			case w.batches <- dedupe(batch):
			case <-w.done:
			case <-ctx.Done():
			}
			batch = batch[:0]
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case path := <-w.changes:
			batch = append(batch, path)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			flush()
		}
	}
}

// dedupe returns a sorted copy of paths with repeats removed.
func dedupe(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
