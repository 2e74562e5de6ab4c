// Package stores holds the domain stores. Each store exclusively owns the
// configuration of one design dimension, notifies listeners after every
// mutation and, where the dimension persists across sessions, saves its
// state through a persist.Adapter.
package stores

import (
	"errors"
	"math"
	"sync"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
)

var (
	// ErrUnknownItem is returned when an id does not name an item of the store.
	ErrUnknownItem = errors.New("unknown item")
	// ErrOutOfRange is returned for values outside the accepted range.
	ErrOutOfRange = errors.New("value out of range")
)

// notifier fans a change out to registered listeners.
type notifier struct {
	mu  sync.Mutex
	fns []func()
}

// OnChange registers fn to run after every mutation. Listeners run
// synchronously, outside the store lock.
func (n *notifier) OnChange(fn func()) {
	n.mu.Lock()
	n.fns = append(n.fns, fn)
	n.mu.Unlock()
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), len(n.fns))
	copy(fns, n.fns)
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// persisted loads and saves one store's state under a fixed key.
type persisted[T any] struct {
	adapter persist.Adapter
	key     string
	log     *logging.Logger
}

func (p persisted[T]) load() (T, bool) {
	state, status := persist.Load[T](p.adapter, p.key, persist.Version)
	if status != persist.Loaded {
		p.log.WithFields(map[string]any{"key": p.key, "status": status.String()}).
			Debug("using default state")
		return state, false
	}
	return state, true
}

func (p persisted[T]) save(state T) {
	if err := persist.Save(p.adapter, p.key, persist.Version, state); err != nil {
		p.log.Error(err, "persisting store state")
	}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
