package scale

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnsupportedBaseUnit is returned for a spacing base unit other than 4 or 8.
var ErrUnsupportedBaseUnit = errors.New("unsupported spacing base unit")

// SpacingMultipliers are applied to the base unit, one per generated step.
var SpacingMultipliers = []int{1, 2, 3, 4, 6, 8, 10, 12, 16}

// BaseUnits are the supported spacing presets.
var BaseUnits = []int{4, 8}

// DefaultBaseUnit is the base unit a new session starts with.
const DefaultBaseUnit = 4

// SpacingItem is one spacing step in px.
type SpacingItem struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Usage string `json:"usage" yaml:"usage"`
}

var defaultSpacing4 = []SpacingItem{
	{ID: "space-2xs", Name: "2XS", Value: 4, Usage: "Minimum gap"},
	{ID: "space-xs", Name: "Extra Small", Value: 8, Usage: "Icons and small elements"},
	{ID: "space-sm", Name: "Small", Value: 12, Usage: "Tight element gaps"},
	{ID: "space-md", Name: "Medium", Value: 16, Usage: "Default component padding"},
	{ID: "space-lg", Name: "Large", Value: 20, Usage: "Moderate section padding"},
	{ID: "space-xl", Name: "Extra Large", Value: 24, Usage: "Wide section padding"},
	{ID: "space-2xl", Name: "2XL", Value: 32, Usage: "Large section padding"},
	{ID: "space-3xl", Name: "3XL", Value: 40, Usage: "Core layout padding"},
}

var defaultSpacing8 = []SpacingItem{
	{ID: "space-xs", Name: "Extra Small", Value: 4, Usage: "Very tight gaps, icon internals"},
	{ID: "space-sm", Name: "Small", Value: 8, Usage: "Narrow padding, element gaps"},
	{ID: "space-md", Name: "Medium", Value: 16, Usage: "Default padding, component internals"},
	{ID: "space-lg", Name: "Large", Value: 24, Usage: "Wide padding, section internals"},
	{ID: "space-xl", Name: "Extra Large", Value: 32, Usage: "Very wide padding, section gaps"},
	{ID: "space-2xl", Name: "2XL", Value: 48, Usage: "Layout padding"},
	{ID: "space-3xl", Name: "3XL", Value: 64, Usage: "Large layout padding"},
}

// SupportedBaseUnit reports whether unit is one of BaseUnits.
func SupportedBaseUnit(unit int) bool {
	return slices.Contains(BaseUnits, unit)
}

// GenerateSpacingScale returns value[i] = unit * SpacingMultipliers[i].
// Step 0 is the "Base Unit"; the others are "{m}x Base Unit".
func GenerateSpacingScale(unit int) ([]SpacingItem, error) {
	if !SupportedBaseUnit(unit) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBaseUnit, unit)
	}

	out := make([]SpacingItem, len(SpacingMultipliers))
	for i, m := range SpacingMultipliers {
		usage := "Base Unit"
		if i > 0 {
			usage = fmt.Sprintf("%dx Base Unit", m)
		}
		out[i] = SpacingItem{
			ID:    fmt.Sprintf("space-%d", i),
			Name:  fmt.Sprintf("Step %d", i+1),
			Value: unit * m,
			Usage: usage,
		}
	}
	return out, nil
}

// DefaultSpacingScale returns the hand-tuned default scale for a base unit.
// Any unit other than 8 gets the 4px scale.
func DefaultSpacingScale(unit int) []SpacingItem {
	if unit == 8 {
		return slices.Clone(defaultSpacing8)
	}
	return slices.Clone(defaultSpacing4)
}
