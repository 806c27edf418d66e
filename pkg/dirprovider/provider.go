// Package dirprovider keeps the sorted listing of one directory fresh.
package dirprovider

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/fsutils"
	"github.com/filetug/twinpane/pkg/metrics"
	"github.com/filetug/twinpane/pkg/watcher"
	"go.uber.org/zap"
)

// Dispatcher runs f on the foreground context, e.g. tview's QueueUpdateDraw.
type Dispatcher interface {
	QueueUpdate(f func())
}

type DispatcherFunc func(f func())

func (d DispatcherFunc) QueueUpdate(f func()) {
	d(f)
}

// Immediate runs f on the calling goroutine.
var Immediate = DispatcherFunc(func(f func()) { f() })

type dirWatcher interface {
	Start() error
	Stop()
}

var newWatcher = func(dir string, onChange func(), o ...watcher.Option) dirWatcher {
	return watcher.New(dir, onChange, o...)
}

type Option func(*Provider)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) {
		p.metrics = m
	}
}

// WithShowHidden includes dot-files in snapshots.
func WithShowHidden(v bool) Option {
	return func(p *Provider) {
		p.showHidden = v
	}
}

func WithWatcherOptions(o ...watcher.Option) Option {
	return func(p *Provider) {
		p.watcherOptions = append(p.watcherOptions, o...)
	}
}

// Provider owns the listing of one (root, path) pair at a time.
// Scans run in the background and snapshots are published through the Dispatcher.
type Provider struct {
	store      files.Store
	dispatcher Dispatcher
	onSnapshot func(files.Snapshot)

	logger         *zap.Logger
	metrics        *metrics.Metrics
	showHidden     bool
	watcherOptions []watcher.Option

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	generation uint64
	watcher    dirWatcher
	closed     bool

	// Only touched on the foreground context.
	snapshot files.Snapshot
}

func New(store files.Store, dispatcher Dispatcher, onSnapshot func(files.Snapshot), o ...Option) *Provider {
	if store == nil {
		panic("store is nil")
	}
	if dispatcher == nil {
		dispatcher = Immediate
	}
	p := &Provider{
		store:      store,
		dispatcher: dispatcher,
		onSnapshot: onSnapshot,
	}
	for _, opt := range o {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Snapshot returns the last published listing.
func (p *Provider) Snapshot() files.Snapshot {
	return p.snapshot
}

// Update re-scans relPath below root.
func (p *Provider) Update(root, relPath string) {
	p.Scan(root, relPath)
}

// Scan replaces the directory watcher and lists relPath below root in the background.
// It returns immediately; the snapshot is delivered to onSnapshot on the foreground context.
// A failed listing publishes nothing and the previous snapshot stays current.
func (p *Provider) Scan(root, relPath string) {
	dir := fsutils.AppendFolderPath(root, relPath)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.generation++
	gen := p.generation
	if p.watcher != nil {
		p.watcher.Stop()
	}
	onChange := func() {
		p.dispatcher.QueueUpdate(func() {
			if p.isCurrent(gen) {
				p.Update(root, relPath)
			}
		})
	}
	w := newWatcher(dir, onChange, append([]watcher.Option{
		watcher.WithLogger(p.logger),
		watcher.WithMetrics(p.metrics),
	}, p.watcherOptions...)...)
	p.watcher = w
	p.mu.Unlock()

	if err := w.Start(); err != nil {
		p.logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
	}

	go p.load(gen, root, relPath, dir)
}

// Close stops the watcher and discards scans still in flight.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.generation++
	p.cancel()
	if p.watcher != nil {
		p.watcher.Stop()
		p.watcher = nil
	}
}

func (p *Provider) isCurrent(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.generation == gen
}

func (p *Provider) load(gen uint64, root, relPath, dir string) {
	started := time.Now()
	p.logger.Debug("scan started", zap.String("dir", dir))

	snapshot, err := p.list(root, relPath, dir)
	if err != nil {
		p.metrics.RecordScan(metrics.ResultError, time.Since(started))
		p.logger.Warn("scan failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	duration := time.Since(started)
	p.logger.Debug("scan finished",
		zap.String("dir", dir),
		zap.Int("entries", snapshot.Len()),
		zap.Duration("duration", duration),
	)

	p.dispatcher.QueueUpdate(func() {
		if !p.isCurrent(gen) {
			p.metrics.RecordStaleScan()
			return
		}
		p.metrics.RecordScan(metrics.ResultSuccess, duration)
		p.snapshot = snapshot
		if p.onSnapshot != nil {
			p.onSnapshot(snapshot)
		}
	})
}

func (p *Provider) list(root, relPath, dir string) (files.Snapshot, error) {
	children, err := p.store.ReadDir(p.ctx, dir)
	if err != nil {
		return files.Snapshot{}, err
	}
	entries := make([]files.Entry, 0, len(children))
	for _, child := range children {
		name := child.Name()
		if !p.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		var kind files.Kind
		if child.IsDir() {
			kind = files.Classify(true, p.countChildren(dir+name), 0, "")
		} else {
			var size int64
			if info, err := child.Info(); err == nil {
				size = info.Size()
			}
			kind = files.Classify(false, 0, size, path.Ext(name))
		}
		entries = append(entries, files.NewEntry(kind, root, path.Join(relPath, name)))
	}
	return files.Snapshot{Dir: dir, Entries: files.SortEntries(entries)}, nil
}

// countChildren returns the number of immediate entries, or 0 when the folder can not be read.
func (p *Provider) countChildren(dir string) int {
	children, err := p.store.ReadDir(p.ctx, dir)
	if err != nil {
		p.logger.Debug("failed to count folder entries", zap.String("dir", dir), zap.Error(err))
		return 0
	}
	return len(children)
}
