package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Changed is delivered to the program after config.toml is reloaded.
type Changed struct {
	Config Config
}

const reloadDelay = 200 * time.Millisecond

// ErrWatcherStopped is reported when fsnotify shuts down underneath a
// watcher that was never stopped.
var ErrWatcherStopped = errors.New("config watcher stopped unexpectedly")

// Watcher reloads a config file when it changes on disk. The directory is
// watched rather than the file because editors usually save by renaming a
// temporary file over the original.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	base     Config
	timer    *time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func(Config)
	onError  func(error)
}

// NewWatcher watches path. Each reload starts from base, so keys removed
// from the file fall back to their base values.
func NewWatcher(path string, base Config, onChange func(Config), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		path:     path,
		base:     base,
		onChange: onChange,
		onError:  onError,
	}, nil
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.report(ErrWatcherStopped)
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.report(ErrWatcherStopped)
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDelay, w.reload)
}

func (w *Watcher) reload() {
	cfg := w.base
	if _, err := LoadPath(w.path, &cfg); err != nil {
		w.report(err)
		return
	}

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if !closed && w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if !closed && w.onError != nil {
		w.onError(err)
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
