// Package backend watches the screen definition file and streams freshly
// parsed screen sets to the UI.
package backend

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/uinav/internal/registry"
)

const (
	defaultInterval = time.Second
	reloadSpacing   = 250 * time.Millisecond
)

// Event conveys a reloaded screen set or the error that prevented one.
type Event struct {
	Path    string
	Screens *registry.Registry
	Err     error
}

// Watcher polls a definitions file at a fixed interval and publishes an event
// whenever its size or modification time changes.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	stamp   fileStamp
	lastErr string
}

type fileStamp struct {
	mod  time.Time
	size int64
}

// NewWatcher starts watching path. The file's current state is the baseline,
// so the first event reports the first change.
func NewWatcher(path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	if info, err := os.Stat(path); err == nil {
		w.stamp = fileStamp{mod: info.ModTime(), size: info.Size()}
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current reload
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	throttle := newThrottle(reloadSpacing)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		evt, changed := w.check()
		if !changed {
			continue
		}
		if !throttle.wait(w.ctx) {
			return
		}
		if evt.Err == nil {
			evt.Screens, evt.Err = registry.Load(w.path)
		}
		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}

// check stats the file. A repeated stat error is reported once.
func (w *Watcher) check() (Event, bool) {
	evt := Event{Path: w.path}
	info, err := os.Stat(w.path)
	if err != nil {
		if err.Error() == w.lastErr {
			return evt, false
		}
		w.lastErr = err.Error()
		w.stamp = fileStamp{}
		evt.Err = err
		return evt, true
	}
	w.lastErr = ""
	stamp := fileStamp{mod: info.ModTime(), size: info.Size()}
	if stamp == w.stamp {
		return evt, false
	}
	w.stamp = stamp
	return evt, true
}
