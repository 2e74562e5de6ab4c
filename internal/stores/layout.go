package stores

import (
	"fmt"
	"maps"
	"sync"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/scale"
)

// LayoutState is the persisted grid configuration.
type LayoutState struct {
	Grids   map[scale.Breakpoint]scale.GridConfig `json:"grids" yaml:"grids"`
	Active  scale.Breakpoint                      `json:"active" yaml:"active"`
	Overlay bool                                  `json:"overlay" yaml:"overlay"`
}

// DefaultLayoutState returns the default grids with desktop active.
func DefaultLayoutState() LayoutState {
	return LayoutState{Grids: scale.DefaultGrids(), Active: scale.DefaultBreakpoint}
}

func (s LayoutState) clone() LayoutState {
	s.Grids = maps.Clone(s.Grids)
	return s
}

// ActiveGrid returns the grid of the active breakpoint.
func (s LayoutState) ActiveGrid() scale.GridConfig {
	return s.Grids[s.Active]
}

// GridPatch is a partial update of one breakpoint's grid.
type GridPatch struct {
	Columns *int `json:"columns,omitempty" yaml:"columns,omitempty"`
	Gutter  *int `json:"gutter,omitempty" yaml:"gutter,omitempty"`
	Margin  *int `json:"margin,omitempty" yaml:"margin,omitempty"`
}

func (p GridPatch) apply(g scale.GridConfig) (scale.GridConfig, error) {
	if p.Columns != nil {
		if *p.Columns < 1 {
			return g, fmt.Errorf("grid columns %d: %w", *p.Columns, ErrOutOfRange)
		}
		g.Columns = *p.Columns
	}
	if p.Gutter != nil {
		if *p.Gutter < 0 {
			return g, fmt.Errorf("grid gutter %d: %w", *p.Gutter, ErrOutOfRange)
		}
		g.Gutter = *p.Gutter
	}
	if p.Margin != nil {
		if *p.Margin < 0 {
			return g, fmt.Errorf("grid margin %d: %w", *p.Margin, ErrOutOfRange)
		}
		g.Margin = *p.Margin
	}
	return g, nil
}

// LayoutStore owns the per-breakpoint grids.
type LayoutStore struct {
	notifier

	mu    sync.RWMutex
	state LayoutState
	store persisted[LayoutState]
}

// NewLayoutStore loads state from adapter, falling back to defaults.
func NewLayoutStore(adapter persist.Adapter, log *logging.Logger) *LayoutStore {
	s := &LayoutStore{
		store: persisted[LayoutState]{adapter: adapter, key: persist.KeyLayout, log: log},
	}
	state, ok := s.store.load()
	if !ok || len(state.Grids) == 0 {
		state = DefaultLayoutState()
	}
	if _, err := scale.ParseBreakpoint(string(state.Active)); err != nil {
		state.Active = scale.DefaultBreakpoint
	}
	s.state = state
	return s
}

// Snapshot returns a copy of the current state.
func (s *LayoutStore) Snapshot() LayoutState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// UpdateGrid applies a partial update to one breakpoint.
func (s *LayoutStore) UpdateGrid(bp scale.Breakpoint, p GridPatch) error {
	if _, err := scale.ParseBreakpoint(string(bp)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownItem, err)
	}
	return s.mutate(func(st *LayoutState) error {
		g, err := p.apply(st.Grids[bp])
		if err != nil {
			return err
		}
		st.Grids[bp] = g
		return nil
	})
}

// SetActive switches the active breakpoint.
func (s *LayoutStore) SetActive(bp scale.Breakpoint) error {
	if _, err := scale.ParseBreakpoint(string(bp)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownItem, err)
	}
	return s.mutate(func(st *LayoutState) error {
		st.Active = bp
		return nil
	})
}

// ToggleOverlay flips the grid overlay.
func (s *LayoutStore) ToggleOverlay() {
	_ = s.mutate(func(st *LayoutState) error {
		st.Overlay = !st.Overlay
		return nil
	})
}

// Replace swaps in a whole state, used when applying a design file.
func (s *LayoutStore) Replace(state LayoutState) {
	_ = s.mutate(func(st *LayoutState) error {
		*st = state.clone()
		return nil
	})
}

// Reset restores the default grids and active breakpoint. The overlay
// toggle is left alone.
func (s *LayoutStore) Reset() {
	_ = s.mutate(func(st *LayoutState) error {
		def := DefaultLayoutState()
		st.Grids = def.Grids
		st.Active = def.Active
		return nil
	})
}

func (s *LayoutStore) mutate(fn func(*LayoutState) error) error {
	s.mu.Lock()
	next := s.state.clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	snapshot := next.clone()
	s.mu.Unlock()

	s.store.save(snapshot)
	s.notify()
	return nil
}
