package stores

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/yacobolo/tokenkit/internal/scale"
)

// ColorMode selects how the primary and neutral ramps are built.
type ColorMode string

const (
	// ModeCustom derives 10-step ramps from an arbitrary base color.
	ModeCustom ColorMode = "custom"
	// ModeCatalog uses the 12-step catalog palettes.
	ModeCatalog ColorMode = "catalog"
)

// ParseColorMode validates a mode name.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ModeCustom, ModeCatalog:
		return m, nil
	}
	return "", fmt.Errorf("unknown color mode %q", s)
}

// SemanticRoles are the status roles in display order.
var SemanticRoles = []string{"success", "warning", "danger", "info"}

var defaultSemantic = map[string]string{
	"success": "green",
	"warning": "amber",
	"danger":  "red",
	"info":    "blue",
}

// ColorState is the color configuration.
type ColorState struct {
	Mode        ColorMode              `json:"mode" yaml:"mode"`
	Base        string                 `json:"base" yaml:"base"`
	Brand       string                 `json:"brand" yaml:"brand"`
	Neutral     string                 `json:"neutral" yaml:"neutral"`
	AutoNeutral bool                   `json:"autoNeutral" yaml:"autoNeutral"`
	Semantic    map[string]string      `json:"semantic" yaml:"semantic"`
	Policy      scale.ForegroundPolicy `json:"policy" yaml:"policy"`
}

// DefaultColorState starts from the default primary color paired with slate.
func DefaultColorState() ColorState {
	return ColorState{
		Mode:        ModeCustom,
		Base:        "#3b82f6",
		Brand:       "blue",
		Neutral:     "slate",
		AutoNeutral: true,
		Semantic:    maps.Clone(defaultSemantic),
		Policy:      scale.ForegroundDenylist,
	}
}

func (s ColorState) clone() ColorState {
	s.Semantic = maps.Clone(s.Semantic)
	return s
}

// ColorStore owns the brand, neutral and semantic color selection.
// It is session-local.
type ColorStore struct {
	notifier

	mu    sync.RWMutex
	state ColorState
}

// NewColorStore returns a store holding the default colors.
func NewColorStore() *ColorStore {
	return &ColorStore{state: DefaultColorState()}
}

// Snapshot returns a copy of the current state.
func (s *ColorStore) Snapshot() ColorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// SetBase switches to custom mode with a new base color. The literal is
// stored even when invalid; projection then yields nothing for it. With
// auto-neutral on, the nearest brand hue picks the recommended neutral.
func (s *ColorStore) SetBase(color string) {
	s.mu.Lock()
	s.state.Mode = ModeCustom
	s.state.Base = color
	if brand, ok := scale.NearestBrand(color); ok {
		s.state.Brand = brand
		if s.state.AutoNeutral {
			s.state.Neutral = scale.TopNeutral(brand)
		}
	}
	s.mu.Unlock()
	s.notify()
}

// SetBrand switches to catalog mode with a brand hue.
func (s *ColorStore) SetBrand(brand string) error {
	if !scale.IsBrand(brand) {
		return fmt.Errorf("brand %q: %w", brand, ErrUnknownItem)
	}

	s.mu.Lock()
	s.state.Mode = ModeCatalog
	s.state.Brand = brand
	if s.state.AutoNeutral {
		s.state.Neutral = scale.TopNeutral(brand)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetNeutral selects a neutral family.
func (s *ColorStore) SetNeutral(neutral string) error {
	if !scale.IsNeutral(neutral) {
		return fmt.Errorf("neutral %q: %w", neutral, ErrUnknownItem)
	}

	s.mu.Lock()
	s.state.Neutral = neutral
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetAutoNeutral toggles auto-selection of the recommended neutral.
func (s *ColorStore) SetAutoNeutral(on bool) {
	s.mu.Lock()
	s.state.AutoNeutral = on
	s.mu.Unlock()
	s.notify()
}

// SetSemantic assigns a brand hue to a status role.
func (s *ColorStore) SetSemantic(role, hue string) error {
	if !slices.Contains(SemanticRoles, role) {
		return fmt.Errorf("semantic role %q: %w", role, ErrUnknownItem)
	}
	if !scale.IsBrand(hue) {
		return fmt.Errorf("semantic hue %q: %w", hue, ErrUnknownItem)
	}

	s.mu.Lock()
	s.state.Semantic[role] = hue
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetMode switches between custom and catalog ramps.
func (s *ColorStore) SetMode(mode ColorMode) {
	s.mu.Lock()
	s.state.Mode = mode
	s.mu.Unlock()
	s.notify()
}

// SetPolicy selects the foreground rule.
func (s *ColorStore) SetPolicy(p scale.ForegroundPolicy) {
	s.mu.Lock()
	s.state.Policy = p
	s.mu.Unlock()
	s.notify()
}

// NeutralOptions lists neutral families for the current brand, recommended first.
func (s *ColorStore) NeutralOptions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scale.OrderNeutrals(s.state.Brand)
}

// Replace swaps in a whole state, used when applying a design file.
func (s *ColorStore) Replace(state ColorState) {
	if state.Semantic == nil {
		state.Semantic = maps.Clone(defaultSemantic)
	}
	s.mu.Lock()
	s.state = state.clone()
	s.mu.Unlock()
	s.notify()
}

// Reset restores the default colors.
func (s *ColorStore) Reset() {
	s.mu.Lock()
	s.state = DefaultColorState()
	s.mu.Unlock()
	s.notify()
}
