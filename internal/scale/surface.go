package scale

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// RadiusItem is one corner radius in px.
type RadiusItem struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

var defaultRadius = []RadiusItem{
	{ID: "none", Name: "None", Value: 0},
	{ID: "xs", Name: "Extra Small", Value: 2},
	{ID: "sm", Name: "Small", Value: 4},
	{ID: "md", Name: "Medium", Value: 6},
	{ID: "lg", Name: "Large", Value: 8},
	{ID: "xl", Name: "Extra Large", Value: 12},
	{ID: "2xl", Name: "2XL", Value: 16},
	{ID: "3xl", Name: "3XL", Value: 24},
	{ID: "full", Name: "Full", Value: 9999},
}

// DefaultRadiusScale returns a fresh copy of the default radius scale.
func DefaultRadiusScale() []RadiusItem {
	return slices.Clone(defaultRadius)
}

// ShadowLayer is one elevation level.
type ShadowLayer struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Blur        float64 `json:"blur" yaml:"blur"`
	Spread      float64 `json:"spread" yaml:"spread"`
	Color       string  `json:"color" yaml:"color"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Description string  `json:"description" yaml:"description"`
}

var defaultShadows = []ShadowLayer{
	{ID: "layer-1", Name: "Layer 1 (XS)", X: 0, Y: 1, Blur: 2, Spread: 0, Color: "#000000", Opacity: 0.05, Description: "Cards, Buttons (Low elevation)"},
	{ID: "layer-2", Name: "Layer 2 (SM)", X: 0, Y: 1, Blur: 3, Spread: 0, Color: "#000000", Opacity: 0.1, Description: "Dropdowns, Popovers"},
	{ID: "layer-3", Name: "Layer 3 (MD)", X: 0, Y: 4, Blur: 6, Spread: -1, Color: "#000000", Opacity: 0.1, Description: "Navigation, Headers"},
	{ID: "layer-4", Name: "Layer 4 (LG)", X: 0, Y: 10, Blur: 15, Spread: -3, Color: "#000000", Opacity: 0.1, Description: "Modals, Dialogs (High elevation)"},
	{ID: "layer-5", Name: "Layer 5 (XL)", X: 0, Y: 20, Blur: 25, Spread: -5, Color: "#000000", Opacity: 0.1, Description: "Toasts, Floating Buttons (Highest)"},
}

// DefaultShadowLayers returns a fresh copy of the five elevation levels.
func DefaultShadowLayers() []ShadowLayer {
	return slices.Clone(defaultShadows)
}

// Breakpoint names a responsive grid configuration.
type Breakpoint string

// Breakpoints in ascending width.
const (
	Mobile  Breakpoint = "mobile"
	Tablet  Breakpoint = "tablet"
	Desktop Breakpoint = "desktop"
)

// Breakpoints returns all breakpoints in ascending width.
func Breakpoints() []Breakpoint {
	return []Breakpoint{Mobile, Tablet, Desktop}
}

// ParseBreakpoint validates a breakpoint name.
func ParseBreakpoint(s string) (Breakpoint, error) {
	switch b := Breakpoint(s); b {
	case Mobile, Tablet, Desktop:
		return b, nil
	}
	return "", fmt.Errorf("unknown breakpoint %q", s)
}

// GridConfig is the column grid of one breakpoint.
type GridConfig struct {
	Columns int `json:"columns" yaml:"columns"`
	Gutter  int `json:"gutter" yaml:"gutter"`
	Margin  int `json:"margin" yaml:"margin"`
}

var defaultGrids = map[Breakpoint]GridConfig{
	Mobile:  {Columns: 4, Gutter: 16, Margin: 16},
	Tablet:  {Columns: 8, Gutter: 24, Margin: 32},
	Desktop: {Columns: 12, Gutter: 24, Margin: 80},
}

// DefaultBreakpoint is the active breakpoint of a new session.
const DefaultBreakpoint = Desktop

// DefaultGrids returns a fresh copy of the per-breakpoint grids.
func DefaultGrids() map[Breakpoint]GridConfig {
	return maps.Clone(defaultGrids)
}

// OpacityState names an interaction state.
type OpacityState string

// Interaction states in display order.
const (
	OpacityDisabled OpacityState = "disabled"
	OpacityHover    OpacityState = "hover"
	OpacityPressed  OpacityState = "pressed"
	OpacityOverlay  OpacityState = "overlay"
)

// OpacityStates returns the states in display order.
func OpacityStates() []OpacityState {
	return []OpacityState{OpacityDisabled, OpacityHover, OpacityPressed, OpacityOverlay}
}

// ParseOpacityState validates an interaction state name.
func ParseOpacityState(s string) (OpacityState, error) {
	for _, st := range OpacityStates() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown interaction state %q", s)
}

// Opacity holds the interaction-state opacities, each 0..1.
type Opacity struct {
	Disabled float64 `json:"disabled" yaml:"disabled"`
	Hover    float64 `json:"hover" yaml:"hover"`
	Pressed  float64 `json:"pressed" yaml:"pressed"`
	Overlay  float64 `json:"overlay" yaml:"overlay"`
}

// DefaultOpacity returns the default interaction opacities.
func DefaultOpacity() Opacity {
	return Opacity{Disabled: 0.4, Hover: 0.9, Pressed: 0.95, Overlay: 0.5}
}

// Get returns the opacity of a state.
func (o Opacity) Get(s OpacityState) float64 {
	switch s {
	case OpacityDisabled:
		return o.Disabled
	case OpacityHover:
		return o.Hover
	case OpacityPressed:
		return o.Pressed
	case OpacityOverlay:
		return o.Overlay
	}
	return 0
}

// With returns a copy with one state replaced.
func (o Opacity) With(s OpacityState, v float64) Opacity {
	switch s {
	case OpacityDisabled:
		o.Disabled = v
	case OpacityHover:
		o.Hover = v
	case OpacityPressed:
		o.Pressed = v
	case OpacityOverlay:
		o.Overlay = v
	}
	return o
}

// ShadowCSS renders a layer as a box-shadow value such as
// "0px 1px 2px 0px rgba(0, 0, 0, 0.05)".
func ShadowCSS(l ShadowLayer) string {
	r, g, b := HexToRGB(l.Color)
	return fmt.Sprintf("%spx %spx %spx %spx rgba(%d, %d, %d, %s)",
		formatFloat(l.X), formatFloat(l.Y), formatFloat(l.Blur), formatFloat(l.Spread),
		r, g, b, formatFloat(l.Opacity))
}

// HexToRGB decodes a hex color into 8-bit channels. Invalid input yields black.
func HexToRGB(hex string) (r, g, b uint8) {
	c, ok := ParseColor(hex)
	if !ok {
		return 0, 0, 0
	}
	return c.RGB255()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
