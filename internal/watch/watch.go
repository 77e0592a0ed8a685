// Package watch recursively watches a source tree for changes and debounces
// bursts of edits into a single callback, so "parse --watch" can re-run the
// extraction pipeline once per batch of saves rather than once per file.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory tree for changes to files with recognized
// extensions, firing callback with the debounced set of changed paths.
type Watcher struct {
	watcher      *fsnotify.Watcher
	extensions   map[string]bool
	debounceTime time.Duration
	callback     func(files []string)

	ctx    context.Context
	cancel context.CancelFunc
	doneCh chan struct{}

	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
}

// New creates a Watcher rooted at root, recursively watching every
// subdirectory present at construction time. Only files whose extension is
// in extensions trigger the callback; extensions carry a leading dot
// (an empty list matches nothing), matching lang.Language.Extensions.
func New(root string, extensions []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[ext] = true
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &Watcher{
		watcher:      fsw,
		extensions:   extMap,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching in the background, invoking callback with the
// accumulated list of changed paths once per debounce window.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) {
	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)
	go w.watch()
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watch() {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("watch: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[event.Name] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(fireCh)

		case <-fireCh:
			w.fireCallback()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: error: %v", err)
		}
	}
}

func (w *Watcher) fireCallback() {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	if w.callback != nil {
		w.callback(files)
	}
}

func (w *Watcher) resetDebounceTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	ext := filepath.Ext(event.Name)
	return w.extensions[ext]
}

func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("watch: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("watch: failed to watch directory %s: %v", path, err)
			return nil
		}
		return nil
	})
}
