// Package watch reloads a design file whenever it changes on disk.
//
// The watcher observes the file's parent directory rather than the file
// itself so that editors which save by writing a temporary file and
// renaming it over the original keep triggering reloads. Bursts of events
// are collapsed by a debouncer.
package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/schedule"
)

// DefaultDelay is the quiet period after the last file event.
const DefaultDelay = 200 * time.Millisecond

// Options configures New.
type Options struct {
	Scheduler schedule.Scheduler
	Delay     time.Duration
	Log       *logging.Logger
	// OnError receives load and apply failures. They are logged either way.
	OnError func(error)
}

// Watcher reloads one design file.
type Watcher struct {
	path     string
	onReload func(app.Design) error
	opts     Options
	log      *logging.Logger

	fs       *fsnotify.Watcher
	debounce *schedule.Debouncer

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
	reloads int
}

// New creates a watcher for path. onReload receives every successfully
// parsed design; an error it returns is reported like a load failure.
func New(path string, onReload func(app.Design) error, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(abs),
		onReload: onReload,
		opts:     opts,
		log:      opts.Log.With("file", abs),
		fs:       fsw,
		done:     make(chan struct{}),
	}
	w.debounce = schedule.NewDebouncer(opts.Scheduler, opts.Delay, w.reload)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return nil
	}
	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true

	go w.eventLoop()
	w.log.Info("watching design file")
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	w.debounce.Stop()
	err := w.fs.Close()
	if started {
		<-w.done
	}
	return err
}

// Reloads returns the number of successful reloads.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "file watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Remove and Rename are the first half of an atomic save; the Create
	// that follows triggers the reload.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.log.WithFields(map[string]any{"op": event.Op.String()}).Debug("design file event")
	w.debounce.Trigger()
}

func (w *Watcher) reload() {
	d, err := app.LoadDesign(w.path)
	if err == nil && w.onReload != nil {
		err = w.onReload(d)
	}
	if err != nil {
		w.log.Error(err, "reloading design")
		if w.opts.OnError != nil {
			w.opts.OnError(err)
		}
		return
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.log.Info("design reloaded")
}
