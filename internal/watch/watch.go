// Package watch submits documents dropped into an input directory to the
// extraction pipeline, for running the service against a hot folder instead
// of (or alongside) the HTTP API.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dgallion1/outliner/internal/source"
)

// settleDelay is how long a file must stay quiet before it is submitted.
// Copies into the watched directory arrive as a burst of write events, and
// parsing a half-copied document would fail.
const settleDelay = 500 * time.Millisecond

// Handler receives the path of a settled, supported document.
type Handler func(path string)

// Watcher monitors one directory for new documents.
type Watcher struct {
	dir     string
	log     *slog.Logger
	handler Handler

	mu       sync.Mutex
	pending  map[string]*time.Timer
	inFlight sync.WaitGroup
}

func New(dir string, log *slog.Logger, handler Handler) *Watcher {
	return &Watcher{
		dir:     dir,
		log:     log,
		handler: handler,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			// Stop what can be stopped, then wait out any settle callback
			// already running so the handler is never invoked after Run
			// returns.
			w.drainTimers()
			w.inFlight.Wait()
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.eligible(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// eligible filters out unsupported formats, hidden files, and temp files.
func (w *Watcher) eligible(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return source.IsSupportedExtension(base)
}

// schedule re-arms the settle timer for a path. Every new event for the
// same file pushes submission back until writes stop. The pending entry
// identifies the timer that owns submission; a callback that finds itself
// superseded or drained must not invoke the handler.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if old, ok := w.pending[path]; ok && old.Stop() {
		w.inFlight.Done()
	}
	w.inFlight.Add(1)
	var t *time.Timer
	t = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		owner := w.pending[path] == t
		if owner {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		if !owner {
			w.inFlight.Done()
			return
		}
		w.log.Info("new document", "path", path)
		w.handler(path)
		w.inFlight.Done()
	})
	w.pending[path] = t
}

func (w *Watcher) drainTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		// A timer that cannot be stopped has already fired; its callback
		// owns the inFlight slot and releases it itself.
		if t.Stop() {
			w.inFlight.Done()
		}
		delete(w.pending, path)
	}
}
