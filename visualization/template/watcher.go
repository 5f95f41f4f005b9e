package template

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Watcher polls a template directory and reports changed template types.
// Polling keeps the behavior identical across platforms; template edits
// are rare enough that a one second interval costs nothing.
type Watcher struct {
	mu sync.RWMutex

	dir          string
	interval     time.Duration
	debounce     time.Duration
	logger       *zap.Logger
	running      bool
	stopChan     chan struct{}
	eventChan    chan Event
	callbacks    []func(Event)
	lastModTimes map[string]time.Time
}

// Event describes one observed template change.
type Event struct {
	TemplateType string
	Op           Op
	Timestamp    time.Time
}

// Op is the kind of change a Watcher observed.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithPollInterval sets how often the directory is scanned.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.interval = d }
}

// WithDebounce sets how long to coalesce rapid edits to one file.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// NewWatcher builds a watcher over dir. The directory may not exist
// yet; scanning simply finds nothing until it does.
func NewWatcher(dir string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:          dir,
		interval:     time.Second,
		debounce:     100 * time.Millisecond,
		logger:       zap.NewNop(),
		stopChan:     make(chan struct{}),
		eventChan:    make(chan Event, 100),
		lastModTimes: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnChange registers a callback invoked for each debounced event.
func (w *Watcher) OnChange(callback func(Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins polling. It returns immediately; the watcher stops when
// ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Seed mod times so startup does not fire a create event per file.
	w.scan(false)

	go w.pollLoop(ctx)
	go w.dispatchLoop(ctx)

	w.logger.Info("Template watcher started",
		zap.String("dir", w.dir),
		zap.Duration("interval", w.interval))
	return nil
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopChan)
	w.running = false
	w.logger.Info("Template watcher stopped")
}

func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.scan(true)
		}
	}
}

// scan compares the directory against the last seen mod times. When
// emit is false it only records state.
func (w *Watcher) scan(emit bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	seen := make(map[string]struct{})
	entries, err := os.ReadDir(w.dir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".json")
			seen[name] = struct{}{}

			lastMod, existed := w.lastModTimes[name]
			switch {
			case !existed:
				w.lastModTimes[name] = info.ModTime()
				if emit {
					w.send(Event{TemplateType: name, Op: OpCreate, Timestamp: time.Now()})
				}
			case info.ModTime().After(lastMod):
				w.lastModTimes[name] = info.ModTime()
				if emit {
					w.send(Event{TemplateType: name, Op: OpWrite, Timestamp: time.Now()})
				}
			}
		}
	}

	for name := range w.lastModTimes {
		if _, ok := seen[name]; !ok {
			delete(w.lastModTimes, name)
			if emit {
				w.send(Event{TemplateType: name, Op: OpRemove, Timestamp: time.Now()})
			}
		}
	}
}

func (w *Watcher) send(event Event) {
	select {
	case w.eventChan <- event:
	default:
		w.logger.Warn("Template event dropped, channel full",
			zap.String("template_type", event.TemplateType))
	}
}

// dispatchLoop coalesces rapid events per template and fans them out to
// the registered callbacks after the debounce window.
func (w *Watcher) dispatchLoop(ctx context.Context) {
	var (
		pending       = make(map[string]Event)
		debounceTimer *time.Timer
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event := <-w.eventChan:
			pending[event.TemplateType] = event

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			batch := pending
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.mu.RLock()
				callbacks := make([]func(Event), len(w.callbacks))
				copy(callbacks, w.callbacks)
				w.mu.RUnlock()

				for _, evt := range batch {
					w.logger.Debug("Dispatching template event",
						zap.String("template_type", evt.TemplateType),
						zap.String("op", evt.Op.String()))
					for _, cb := range callbacks {
						cb(evt)
					}
				}
			})
			pending = make(map[string]Event)
		}
	}
}
