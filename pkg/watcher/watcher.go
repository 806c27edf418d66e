// Package watcher notifies about changes in the contents of a single directory.
package watcher

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/filetug/twinpane/pkg/metrics"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces a burst of notifications, e.g. a folder copy, into one callback.
const DefaultDebounce = 50 * time.Millisecond

var ErrStopped = errors.New("watcher is stopped")

var newFSWatcher = fsnotify.NewWatcher

// changeOps are the write-class operations that alter a directory listing.
const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

type Option func(*options)

type options struct {
	logger   *zap.Logger
	metrics  *metrics.Metrics
	debounce time.Duration
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithDebounce sets the quiet period before onChange fires. Zero fires on every event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// Watcher observes one directory for its whole lifetime.
// onChange runs on the notification goroutine, never on the caller's.
type Watcher struct {
	dir      string
	onChange func()
	options  options

	mu      sync.Mutex
	handle  *handle
	stopped bool
}

// New creates a watcher for dir. Nothing is observed until Start.
func New(dir string, onChange func(), o ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		onChange: onChange,
		options:  options{debounce: DefaultDebounce},
	}
	for _, opt := range o {
		opt(&w.options)
	}
	if w.options.logger == nil {
		w.options.logger = zap.NewNop()
	}
	return w
}

func (w *Watcher) Dir() string {
	return w.dir
}

// IsRunning reports whether Start succeeded and Stop has not been called.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.handle != nil && !w.stopped
}

// Start opens the OS monitor. A second call while running is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrStopped
	}
	if w.handle != nil {
		return nil
	}
	fsw, err := newFSWatcher()
	if err != nil {
		return err
	}
	if err = fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}
	h := &handle{
		fsw:      fsw,
		dir:      w.dir,
		onChange: w.onChange,
		options:  w.options,
		done:     make(chan struct{}),
	}
	w.handle = h
	go h.loop()
	// The loop goroutine references only h, so an abandoned Watcher is still collected and h closed.
	runtime.AddCleanup(w, func(h *handle) { h.close() }, h)
	w.options.logger.Debug("watcher started", zap.String("dir", w.dir))
	return nil
}

// Stop releases the OS monitor. It is safe to call more than once and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.handle != nil {
		w.handle.close()
		w.options.logger.Debug("watcher stopped", zap.String("dir", w.dir))
	}
}

type handle struct {
	fsw      *fsnotify.Watcher
	dir      string
	onChange func()
	options  options

	closeOnce sync.Once
	done      chan struct{}

	timerMu sync.Mutex
	timer   *time.Timer
}

func (h *handle) close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.timerMu.Lock()
		if h.timer != nil {
			h.timer.Stop()
		}
		h.timerMu.Unlock()
		if err := h.fsw.Close(); err != nil {
			h.options.logger.Warn("failed to close watcher", zap.String("dir", h.dir), zap.Error(err))
		}
	})
}

func (h *handle) isClosed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *handle) loop() {
	for {
		select {
		case <-h.done:
			return
		case event, ok := <-h.fsw.Events:
			if !ok {
				return
			}
			if event.Op&changeOps == 0 {
				continue
			}
			h.options.logger.Debug("directory changed", zap.String("dir", h.dir), zap.Stringer("event", event))
			h.notify()
		case err, ok := <-h.fsw.Errors:
			if !ok {
				return
			}
			h.options.logger.Warn("watcher error", zap.String("dir", h.dir), zap.Error(err))
		}
	}
}

func (h *handle) notify() {
	if h.options.debounce <= 0 {
		h.fire()
		return
	}
	h.timerMu.Lock()
	defer h.timerMu.Unlock()
	if h.timer != nil {
		h.timer.Reset(h.options.debounce)
		return
	}
	h.timer = time.AfterFunc(h.options.debounce, h.fire)
}

func (h *handle) fire() {
	if h.isClosed() || h.onChange == nil {
		return
	}
	h.options.metrics.RecordWatchEvent()
	h.onChange()
}
