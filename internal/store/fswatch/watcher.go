// Package fswatch notifies subscribers when individual files change.
package fswatch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// Event reports that a watched file changed.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Watcher watches files by watching their parent directories, so editors that
// save through rename-and-replace keep being tracked.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  zerolog.Logger

	mu          sync.Mutex
	dirs        map[string]int            // dir -> number of watched files
	subscribers map[string][]chan<- Event // path -> channels
	debounce    map[string]*time.Timer    // path -> debounce timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a watcher.
func New(logger zerolog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:     watcher,
		logger:      logger,
		dirs:        make(map[string]int),
		subscribers: make(map[string][]chan<- Event),
		debounce:    make(map[string]*time.Timer),
		ctx:         ctx,
		cancel:      cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Watch returns a channel that receives an event each time path changes.
// The subscription ends when ctx is done.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			w.mu.Unlock()
			return nil, err
		}
	}
	w.dirs[dir]++

	ch := make(chan Event, eventBufferSize)
	w.subscribers[abs] = append(w.subscribers[abs], ch)
	w.mu.Unlock()

	// Handle context cancellation to unsubscribe
	go func() {
		select {
		case <-ctx.Done():
			w.unsubscribe(abs, ch)
		case <-w.ctx.Done():
			// Watcher is closing, channel will be closed by Close()
		}
	}()

	return ch, nil
}

// Close stops watching and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	for _, subs := range w.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	w.subscribers = make(map[string][]chan<- Event)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) unsubscribe(path string, ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	subs := w.subscribers[path]
	for i, sub := range subs {
		if sub == ch {
			w.subscribers[path] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(w.subscribers[path]) == 0 {
		delete(w.subscribers, path)
	}

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.watcher.Remove(dir)
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, watched := w.subscribers[path]; !watched {
		return
	}

	// a single save produces several events; report it once
	if timer, exists := w.debounce[path]; exists {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.notify(path)
	})
}

func (w *Watcher) notify(path string) {
	event := Event{
		Path:      path,
		Timestamp: time.Now(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.subscribers[path] {
		select {
		case ch <- event:
		default:
			// subscriber already has a pending change for this file
		}
	}

	delete(w.debounce, path)
}
