package stores

import (
	"fmt"
	"slices"
	"sync"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/scale"
)

// TypographyState is the persisted typography configuration.
type TypographyState struct {
	Font     string                `json:"font" yaml:"font"`
	Scale    []scale.TypeScaleItem `json:"scale" yaml:"scale"`
	Selected string                `json:"selected,omitempty" yaml:"selected,omitempty"`
	BaseSize float64               `json:"baseSize" yaml:"baseSize"`
	Ratio    float64               `json:"ratio" yaml:"ratio"`
}

// DefaultTypographyState returns the default font and type scale.
func DefaultTypographyState() TypographyState {
	return TypographyState{
		Font:     scale.DefaultFontFamily().Name,
		Scale:    scale.DefaultTypeScale(),
		BaseSize: scale.DefaultBaseSize,
		Ratio:    scale.DefaultRatio,
	}
}

func (s TypographyState) clone() TypographyState {
	s.Scale = slices.Clone(s.Scale)
	return s
}

// FontFamily resolves the selected font, falling back to the default.
func (s TypographyState) FontFamily() scale.FontFamily {
	if f, ok := scale.LookupFontFamily(s.Font); ok {
		return f
	}
	return scale.DefaultFontFamily()
}

// TypePatch is a partial update of a type scale role.
type TypePatch struct {
	Name          *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Size          *float64 `json:"size,omitempty" yaml:"size,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	Weight        *int     `json:"weight,omitempty" yaml:"weight,omitempty"`
	Usage         *string  `json:"usage,omitempty" yaml:"usage,omitempty"`
}

func (p TypePatch) validate() error {
	if p.Size != nil && (!finite(*p.Size) || *p.Size <= 0) {
		return fmt.Errorf("type size %v: %w", *p.Size, ErrOutOfRange)
	}
	if p.LineHeight != nil && (!finite(*p.LineHeight) || *p.LineHeight <= 0) {
		return fmt.Errorf("line height %v: %w", *p.LineHeight, ErrOutOfRange)
	}
	if p.LetterSpacing != nil && !finite(*p.LetterSpacing) {
		return fmt.Errorf("letter spacing %v: %w", *p.LetterSpacing, ErrOutOfRange)
	}
	return nil
}

func (p TypePatch) apply(item scale.TypeScaleItem) scale.TypeScaleItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.LineHeight != nil {
		item.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil {
		item.LetterSpacing = *p.LetterSpacing
	}
	if p.Weight != nil {
		item.Weight = *p.Weight
	}
	if p.Usage != nil {
		item.Usage = *p.Usage
	}
	return item
}

// TypographyStore owns the font selection and type scale.
type TypographyStore struct {
	notifier

	mu    sync.RWMutex
	state TypographyState
	store persisted[TypographyState]
}

// NewTypographyStore loads state from adapter, falling back to defaults.
func NewTypographyStore(adapter persist.Adapter, log *logging.Logger) *TypographyStore {
	s := &TypographyStore{
		store: persisted[TypographyState]{adapter: adapter, key: persist.KeyTypography, log: log},
	}
	state, ok := s.store.load()
	if !ok || len(state.Scale) == 0 {
		state = DefaultTypographyState()
	}
	s.state = state
	return s
}

// Snapshot returns a copy of the current state.
func (s *TypographyStore) Snapshot() TypographyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SelectFont selects a font family by name.
func (s *TypographyStore) SelectFont(name string) error {
	if _, ok := scale.LookupFontFamily(name); !ok {
		return fmt.Errorf("font %q: %w", name, ErrUnknownItem)
	}
	return s.mutate(func(st *TypographyState) error {
		st.Font = name
		return nil
	})
}

// UpdateItem applies a partial update to one role.
func (s *TypographyStore) UpdateItem(id string, p TypePatch) error {
	if err := p.validate(); err != nil {
		return err
	}
	return s.mutate(func(st *TypographyState) error {
		i := indexOf(st.Scale, func(it scale.TypeScaleItem) bool { return it.ID == id })
		if i < 0 {
			return fmt.Errorf("type role %q: %w", id, ErrUnknownItem)
		}
		st.Scale[i] = p.apply(st.Scale[i])
		return nil
	})
}

// Reorder rearranges the roles. ids must be a permutation of the current ids.
func (s *TypographyStore) Reorder(ids []string) error {
	return s.mutate(func(st *TypographyState) error {
		if len(ids) != len(st.Scale) {
			return fmt.Errorf("reorder: got %d ids for %d roles", len(ids), len(st.Scale))
		}
		next := make([]scale.TypeScaleItem, 0, len(ids))
		for _, id := range ids {
			i := indexOf(st.Scale, func(it scale.TypeScaleItem) bool { return it.ID == id })
			if i < 0 || slices.ContainsFunc(next, func(it scale.TypeScaleItem) bool { return it.ID == id }) {
				return fmt.Errorf("reorder %q: %w", id, ErrUnknownItem)
			}
			next = append(next, st.Scale[i])
		}
		st.Scale = next
		return nil
	})
}

// SelectItem marks a role as selected. An empty id clears the selection.
// The selection is saved but listeners are not notified.
func (s *TypographyStore) SelectItem(id string) error {
	s.mu.Lock()
	if id != "" && indexOf(s.state.Scale, func(it scale.TypeScaleItem) bool { return it.ID == id }) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("type role %q: %w", id, ErrUnknownItem)
	}
	s.state.Selected = id
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.store.save(snapshot)
	return nil
}

// Generate recomputes role sizes from a base size and one of the fixed ratios.
func (s *TypographyStore) Generate(base, ratio float64) error {
	if !finite(base) || base <= 0 {
		return fmt.Errorf("base size %v: %w", base, ErrOutOfRange)
	}
	if _, err := scale.LookupRatio(ratio); err != nil {
		return err
	}
	return s.mutate(func(st *TypographyState) error {
		st.Scale = scale.GenerateTypeScale(st.Scale, base, ratio)
		st.BaseSize = base
		st.Ratio = ratio
		return nil
	})
}

// ResetItem restores one role to its default.
func (s *TypographyStore) ResetItem(id string) error {
	def, ok := scale.DefaultTypeScaleItem(id)
	if !ok {
		return fmt.Errorf("type role %q: %w", id, ErrUnknownItem)
	}
	return s.mutate(func(st *TypographyState) error {
		i := indexOf(st.Scale, func(it scale.TypeScaleItem) bool { return it.ID == id })
		if i < 0 {
			return fmt.Errorf("type role %q: %w", id, ErrUnknownItem)
		}
		st.Scale[i] = def
		return nil
	})
}

// Replace swaps in a whole state, used when applying a design file.
func (s *TypographyStore) Replace(state TypographyState) {
	_ = s.mutate(func(st *TypographyState) error {
		*st = state.clone()
		return nil
	})
}

// Reset restores the default scale and font.
func (s *TypographyStore) Reset() {
	_ = s.mutate(func(st *TypographyState) error {
		*st = DefaultTypographyState()
		return nil
	})
}

func (s *TypographyStore) mutate(fn func(*TypographyState) error) error {
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
