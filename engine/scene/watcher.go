package scene

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/rampart/engine/core"
)

// Watcher live-reloads a scene descriptor file. fsnotify events arrive on a
// background goroutine; the reloaded descriptor is parked until the driving
// thread picks it up between frames with ApplyPending, so item transforms
// are never mutated concurrently with constant upload.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending *Descriptor

	done chan struct{}
}

// NewWatcher starts watching the descriptor file's directory. Editors often
// replace files on save, so the directory is watched and events filtered by
// name.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fsw,
		done:    make(chan struct{}),
	}
	go w.run()

	core.LogInfo("watching scene file %s for changes", path)
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			desc, err := Load(w.path)
			if err != nil {
				core.LogWarn("scene reload skipped: %v", err)
				continue
			}
			w.mu.Lock()
			w.pending = desc
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("scene watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// TakePending returns the most recent reloaded descriptor, or nil when
// nothing changed since the last call. Safe to call every frame.
func (w *Watcher) TakePending() *Descriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	desc := w.pending
	w.pending = nil
	return desc
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
