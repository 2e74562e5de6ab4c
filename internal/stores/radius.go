package stores

import (
	"fmt"
	"slices"
	"sync"

	"github.com/yacobolo/tokenkit/internal/scale"
)

// RadiusState is the corner radius configuration.
type RadiusState struct {
	Scale    []scale.RadiusItem `json:"scale" yaml:"scale"`
	Selected string             `json:"selected,omitempty" yaml:"selected,omitempty"`
}

func (s RadiusState) clone() RadiusState {
	s.Scale = slices.Clone(s.Scale)
	return s
}

// Value returns the px radius of id.
func (s RadiusState) Value(id string) (int, bool) {
	i := indexOf(s.Scale, func(it scale.RadiusItem) bool { return it.ID == id })
	if i < 0 {
		return 0, false
	}
	return s.Scale[i].Value, true
}

// RadiusStore owns the radius scale. It is session-local.
type RadiusStore struct {
	notifier

	mu    sync.RWMutex
	state RadiusState
}

// NewRadiusStore returns a store holding the default radii.
func NewRadiusStore() *RadiusStore {
	return &RadiusStore{state: RadiusState{Scale: scale.DefaultRadiusScale()}}
}

// Snapshot returns a copy of the current state.
func (s *RadiusStore) Snapshot() RadiusState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Update sets the px value of one radius.
func (s *RadiusStore) Update(id string, value int) error {
	if value < 0 {
		return fmt.Errorf("radius %q = %d: %w", id, value, ErrOutOfRange)
	}

	s.mu.Lock()
	i := indexOf(s.state.Scale, func(it scale.RadiusItem) bool { return it.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("radius %q: %w", id, ErrUnknownItem)
	}
	s.state.Scale[i].Value = value
	s.mu.Unlock()
	s.notify()
	return nil
}

// Select marks a radius as selected. An empty id clears the selection.
func (s *RadiusStore) Select(id string) error {
	s.mu.Lock()
	if id != "" && indexOf(s.state.Scale, func(it scale.RadiusItem) bool { return it.ID == id }) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("radius %q: %w", id, ErrUnknownItem)
	}
	s.state.Selected = id
	s.mu.Unlock()
	s.notify()
	return nil
}

// Replace swaps in a whole state, used when applying a design file.
func (s *RadiusStore) Replace(state RadiusState) {
	s.mu.Lock()
	s.state = state.clone()
	s.mu.Unlock()
	s.notify()
}

// Reset restores the default radii.
func (s *RadiusStore) Reset() {
	s.mu.Lock()
	s.state = RadiusState{Scale: scale.DefaultRadiusScale()}
	s.mu.Unlock()
	s.notify()
}
