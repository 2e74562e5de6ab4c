package stores

import (
	"fmt"
	"slices"
	"sync"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/scale"
)

// ShadowState is the persisted elevation configuration.
type ShadowState struct {
	Layers   []scale.ShadowLayer `json:"layers" yaml:"layers"`
	Selected string              `json:"selected,omitempty" yaml:"selected,omitempty"`
}

func (s ShadowState) clone() ShadowState {
	s.Layers = slices.Clone(s.Layers)
	return s
}

// ShadowPatch is a partial update of one layer.
type ShadowPatch struct {
	X       *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y       *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Blur    *float64 `json:"blur,omitempty" yaml:"blur,omitempty"`
	Spread  *float64 `json:"spread,omitempty" yaml:"spread,omitempty"`
	Color   *string  `json:"color,omitempty" yaml:"color,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

func (p ShadowPatch) validate() error {
	if p.Opacity != nil && !inUnit(*p.Opacity) {
		return fmt.Errorf("shadow opacity %v: %w", *p.Opacity, ErrOutOfRange)
	}
	for _, v := range []*float64{p.X, p.Y, p.Blur, p.Spread} {
		if v != nil && !finite(*v) {
			return fmt.Errorf("shadow offset %v: %w", *v, ErrOutOfRange)
		}
	}
	if p.Blur != nil && *p.Blur < 0 {
		return fmt.Errorf("shadow blur %v: %w", *p.Blur, ErrOutOfRange)
	}
	if p.Color != nil && !scale.ValidColor(*p.Color) {
		return fmt.Errorf("shadow color %q: %w", *p.Color, ErrOutOfRange)
	}
	return nil
}

func (p ShadowPatch) apply(l scale.ShadowLayer) scale.ShadowLayer {
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Blur != nil {
		l.Blur = *p.Blur
	}
	if p.Spread != nil {
		l.Spread = *p.Spread
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Opacity != nil {
		l.Opacity = *p.Opacity
	}
	return l
}

// ShadowStore owns the elevation layers.
type ShadowStore struct {
	notifier

	mu    sync.RWMutex
	state ShadowState
	store persisted[ShadowState]
}

// NewShadowStore loads state from adapter, falling back to defaults.
func NewShadowStore(adapter persist.Adapter, log *logging.Logger) *ShadowStore {
	s := &ShadowStore{
		store: persisted[ShadowState]{adapter: adapter, key: persist.KeyShadow, log: log},
	}
	state, ok := s.store.load()
	if !ok || len(state.Layers) == 0 {
		state = ShadowState{Layers: scale.DefaultShadowLayers()}
	}
	s.state = state
	return s
}

// Snapshot returns a copy of the current state.
func (s *ShadowStore) Snapshot() ShadowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// ShadowString renders layer id as a box-shadow value, or "none" for an
// unknown layer.
func (s *ShadowStore) ShadowString(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.state.Layers, func(l scale.ShadowLayer) bool { return l.ID == id })
	if i < 0 {
		return "none"
	}
	return scale.ShadowCSS(s.state.Layers[i])
}

// UpdateLayer applies a partial update to one layer.
func (s *ShadowStore) UpdateLayer(id string, p ShadowPatch) error {
	if err := p.validate(); err != nil {
		return err
	}
	return s.mutate(func(st *ShadowState) error {
		i := indexOf(st.Layers, func(l scale.ShadowLayer) bool { return l.ID == id })
		if i < 0 {
			return fmt.Errorf("shadow layer %q: %w", id, ErrUnknownItem)
		}
		st.Layers[i] = p.apply(st.Layers[i])
		return nil
	})
}

// Select marks a layer as selected. An empty id clears the selection.
func (s *ShadowStore) Select(id string) error {
	return s.mutate(func(st *ShadowState) error {
		if id != "" && indexOf(st.Layers, func(l scale.ShadowLayer) bool { return l.ID == id }) < 0 {
			return fmt.Errorf("shadow layer %q: %w", id, ErrUnknownItem)
		}
		st.Selected = id
		return nil
	})
}

// Replace swaps in a whole state, used when applying a design file.
func (s *ShadowStore) Replace(state ShadowState) {
	_ = s.mutate(func(st *ShadowState) error {
		*st = state.clone()
		return nil
	})
}

// Reset restores the five default layers.
func (s *ShadowStore) Reset() {
	_ = s.mutate(func(st *ShadowState) error {
		*st = ShadowState{Layers: scale.DefaultShadowLayers()}
		return nil
	})
}

func (s *ShadowStore) mutate(fn func(*ShadowState) error) error {
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
