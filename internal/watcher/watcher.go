// Package watcher reports which keys of a file-backed store changed, with
// debouncing so a burst of writes arrives as one notification.
package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
)

// DefaultDebounce is the time to wait after the last file event before
// triggering a callback.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a store directory and invokes a callback with the keys
// changed since the previous call.
type Watcher struct {
	fsw      *fsnotify.Watcher
	delay    time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	callback func(keys []string)
}

// New creates a Watcher on the store directory dir. The callback receives
// the changed keys, sorted. Lock and temp files are ignored.
func New(dir string, callback func(keys []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		delay:    DefaultDebounce,
		pending:  make(map[string]struct{}),
		callback: callback,
	}, nil
}

// SetDebounce changes the debounce window. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.delay = d
	w.mu.Unlock()
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			key, isKey := kv.KeyFromFilename(filepath.Base(event.Name))
			if !isKey {
				continue
			}
			w.debounce(key)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[key] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	keys := make([]string, 0, len(w.pending))
	for k := range w.pending {
		keys = append(keys, k)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)
	w.callback(keys)
}
