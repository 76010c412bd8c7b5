package logtail

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatcherOptions configures a Watcher. Zero values select defaults.
type WatcherOptions struct {
	// Debounce is the quiet period that must follow the last notification
	// before OnChange runs.
	Debounce time.Duration

	// PollInterval, when positive, injects a synthetic notification on a
	// fixed schedule for filesystems that do not report every write.
	PollInterval time.Duration

	Logger *zap.Logger
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	Notifications int // raw notifications for the watched file
	Polls         int // debounced OnChange invocations
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// Watcher turns filesystem notifications for one file into debounced calls
// of OnChange. Bursts inside the debounce window collapse into one call.
//
// OnChange always runs on the watcher's own goroutine, never concurrently
// with itself, and never after Stop has returned.
type Watcher struct {
	mu       sync.RWMutex
	fsw      *fsnotify.Watcher
	path     string
	dir      string
	onChange func()
	opts     WatcherOptions
	log      *zap.Logger
	kick     chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool

	stats WatcherStats
}

// NewWatcher creates a watcher for path. The parent directory is watched
// rather than the file itself so that a replaced file keeps being followed.
func NewWatcher(path string, onChange func(), opts WatcherOptions) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("logtail: nil change handler")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     abs,
		dir:      filepath.Dir(abs),
		onChange: onChange,
		opts:     opts,
		log:      log,
		kick:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers the watch and begins processing events in a goroutine.
// A watcher can be started once; calling Start again while running is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("logtail: watcher already stopped")
	}
	if err := w.fsw.Add(w.dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("watching log file", zap.String("path", w.path), zap.Duration("debounce", w.opts.Debounce))
	go w.run(ctx)
	return nil
}

// Stop cancels any pending debounced poll, releases the watch and waits for
// the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		alreadyStopped := w.stopped
		w.stopped = true
		w.mu.Unlock()
		if !alreadyStopped {
			w.closeFS()
		}
		return
	}
	w.running = false
	w.stopped = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.closeFS()
	w.log.Info("stopped watching", zap.String("path", w.path))
}

func (w *Watcher) closeFS() {
	if err := w.fsw.Close(); err != nil {
		w.log.Error("close fsnotify watcher", zap.Error(err))
	}
}

// Notify injects a change notification as if the filesystem had reported one.
func (w *Watcher) Notify() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// GetStats returns a snapshot of the watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	deb := newDebouncer(w.opts.Debounce)
	defer deb.cancel()

	var tick <-chan time.Time
	if w.opts.PollInterval > 0 {
		ticker := time.NewTicker(w.opts.PollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				w.log.Debug("fsnotify event channel closed")
				return
			}
			if w.handleEvent(event) {
				deb.trigger()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.log.Debug("fsnotify error channel closed")
				return
			}
			w.log.Warn("fsnotify error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-w.kick:
			w.record("notify")
			deb.trigger()

		case <-tick:
			w.record("interval")
			deb.trigger()

		case <-deb.C():
			deb.fired()
			w.mu.Lock()
			w.stats.Polls++
			w.mu.Unlock()
			w.onChange()
		}
	}
}

// handleEvent filters directory events down to the watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	var eventType string
	switch {
	case event.Has(fsnotify.Write):
		eventType = "modify"
	case event.Has(fsnotify.Create):
		eventType = "create"
	case event.Has(fsnotify.Remove):
		eventType = "delete"
	case event.Has(fsnotify.Rename):
		eventType = "rename"
	default:
		return false
	}

	w.log.Debug("log file event", zap.String("type", eventType))
	w.record(eventType)
	return true
}

func (w *Watcher) record(eventType string) {
	w.mu.Lock()
	w.stats.Notifications++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.mu.Unlock()
}
