package stores

import (
	"fmt"
	"sync"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/scale"
)

// InteractionStore owns the interaction-state opacities.
type InteractionStore struct {
	notifier

	mu    sync.RWMutex
	state scale.Opacity
	store persisted[scale.Opacity]
}

// NewInteractionStore loads state from adapter, falling back to defaults.
func NewInteractionStore(adapter persist.Adapter, log *logging.Logger) *InteractionStore {
	s := &InteractionStore{
		store: persisted[scale.Opacity]{adapter: adapter, key: persist.KeyInteraction, log: log},
	}
	state, ok := s.store.load()
	if !ok {
		state = scale.DefaultOpacity()
	}
	s.state = state
	return s
}

// Snapshot returns the current opacities.
func (s *InteractionStore) Snapshot() scale.Opacity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update sets the opacity of one state. v must be within 0..1.
func (s *InteractionStore) Update(state scale.OpacityState, v float64) error {
	if _, err := scale.ParseOpacityState(string(state)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownItem, err)
	}
	if !inUnit(v) {
		return fmt.Errorf("%s opacity %v: %w", state, v, ErrOutOfRange)
	}
	s.mu.Lock()
	s.state = s.state.With(state, v)
	o := s.state
	s.mu.Unlock()
	s.store.save(o)
	s.notify()
	return nil
}

// Replace swaps in all opacities, used when applying a design file.
func (s *InteractionStore) Replace(o scale.Opacity) {
	s.set(o)
}

// Reset restores the default opacities.
func (s *InteractionStore) Reset() {
	s.set(scale.DefaultOpacity())
}

func (s *InteractionStore) set(o scale.Opacity) {
	s.mu.Lock()
	s.state = o
	s.mu.Unlock()
	s.store.save(o)
	s.notify()
}
