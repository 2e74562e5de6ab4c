package stores

import (
	"fmt"
	"slices"
	"sync"

	"github.com/yacobolo/tokenkit/internal/scale"
)

// SpacingState is the spacing configuration.
type SpacingState struct {
	BaseUnit int                 `json:"baseUnit" yaml:"baseUnit"`
	Scale    []scale.SpacingItem `json:"scale" yaml:"scale"`
	Selected string              `json:"selected,omitempty" yaml:"selected,omitempty"`
}

func (s SpacingState) clone() SpacingState {
	s.Scale = slices.Clone(s.Scale)
	return s
}

// SpacingStore owns the spacing scale. It is session-local.
type SpacingStore struct {
	notifier

	mu    sync.RWMutex
	state SpacingState
}

// NewSpacingStore starts from the 4px default scale.
func NewSpacingStore() *SpacingStore {
	return &SpacingStore{state: SpacingState{
		BaseUnit: scale.DefaultBaseUnit,
		Scale:    scale.DefaultSpacingScale(scale.DefaultBaseUnit),
	}}
}

// Snapshot returns a copy of the current state.
func (s *SpacingStore) Snapshot() SpacingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// BaseUnit returns the current base unit.
func (s *SpacingStore) BaseUnit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.BaseUnit
}

// Generate replaces the whole scale with the generated steps for unit.
// Manual edits to individual steps are discarded.
func (s *SpacingStore) Generate(unit int) error {
	items, err := scale.GenerateSpacingScale(unit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.BaseUnit = unit
	s.state.Scale = items
	s.state.Selected = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateItem sets the px value of one step.
func (s *SpacingStore) UpdateItem(id string, value int) error {
	if value < 0 {
		return fmt.Errorf("spacing %q = %d: %w", id, value, ErrOutOfRange)
	}

	s.mu.Lock()
	i := indexOf(s.state.Scale, func(it scale.SpacingItem) bool { return it.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("spacing %q: %w", id, ErrUnknownItem)
	}
	s.state.Scale[i].Value = value
	s.mu.Unlock()
	s.notify()
	return nil
}

// SelectItem marks a step as selected. An empty id clears the selection.
// Selecting does not notify listeners.
func (s *SpacingStore) SelectItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && indexOf(s.state.Scale, func(it scale.SpacingItem) bool { return it.ID == id }) < 0 {
		return fmt.Errorf("spacing %q: %w", id, ErrUnknownItem)
	}
	s.state.Selected = id
	return nil
}

// Replace swaps in a whole state, used when applying a design file.
func (s *SpacingStore) Replace(state SpacingState) {
	s.mu.Lock()
	s.state = state.clone()
	s.mu.Unlock()
	s.notify()
}

// Reset restores the default scale of the current base unit.
func (s *SpacingStore) Reset() {
	s.mu.Lock()
	s.state.Scale = scale.DefaultSpacingScale(s.state.BaseUnit)
	s.state.Selected = ""
	s.mu.Unlock()
	s.notify()
}
