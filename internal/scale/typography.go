package scale

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrUnknownRatio is returned for a ratio outside the fixed ratio set.
var ErrUnknownRatio = errors.New("unknown type scale ratio")

// Ratio is a named modular-scale ratio.
type Ratio struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

var ratios = []Ratio{
	{"Minor Second", 1.067},
	{"Major Second", 1.125},
	{"Minor Third", 1.2},
	{"Major Third", 1.25},
	{"Perfect Fourth", 1.333},
	{"Augmented Fourth", 1.414},
	{"Perfect Fifth", 1.5},
	{"Golden Ratio", 1.618},
}

// DefaultRatio is the Major Third.
const DefaultRatio = 1.25

// DefaultBaseSize is the body text size in px.
const DefaultBaseSize = 16.0

// Ratios returns the fixed ratio set, smallest first.
func Ratios() []Ratio {
	return slices.Clone(ratios)
}

// LookupRatio finds the named ratio for a value.
func LookupRatio(v float64) (Ratio, error) {
	for _, r := range ratios {
		if math.Abs(r.Value-v) < 1e-9 {
			return r, nil
		}
	}
	return Ratio{}, fmt.Errorf("%w: %v", ErrUnknownRatio, v)
}

// TypeScaleItem is one typographic role.
type TypeScaleItem struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Size          float64 `json:"size" yaml:"size"`
	LineHeight    float64 `json:"lineHeight" yaml:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing" yaml:"letterSpacing"`
	Weight        int     `json:"weight" yaml:"weight"`
	Usage         string  `json:"usage" yaml:"usage"`
}

var defaultTypeScale = []TypeScaleItem{
	{ID: "display-xl", Name: "Display XL", Size: 60, LineHeight: 1.1, Weight: 600, Usage: "Landing hero"},
	{ID: "heading-xl", Name: "Heading XL", Size: 32, LineHeight: 1.25, Weight: 600, Usage: "Page title"},
	{ID: "heading-lg", Name: "Heading LG", Size: 28, LineHeight: 1.3, Weight: 600, Usage: "Large section header"},
	{ID: "heading-md", Name: "Heading MD", Size: 24, LineHeight: 1.3, Weight: 600, Usage: "Section header"},
	{ID: "heading-sm", Name: "Heading SM", Size: 20, LineHeight: 1.35, Weight: 600, Usage: "Card and module title"},
	{ID: "body-lg", Name: "Body LG", Size: 18, LineHeight: 1.6, Weight: 400, Usage: "Long-form body"},
	{ID: "body-md", Name: "Body MD", Size: 16, LineHeight: 1.6, Weight: 400, Usage: "Default body"},
	{ID: "body-sm", Name: "Body SM", Size: 14, LineHeight: 1.6, Weight: 400, Usage: "Secondary text"},
	{ID: "label-md", Name: "Label MD", Size: 14, LineHeight: 1.4, Weight: 600, Usage: "Button, form and filter labels"},
	{ID: "label-sm", Name: "Label SM", Size: 12, LineHeight: 1.4, Weight: 600, Usage: "Badges, table headers, tags"},
	{ID: "caption", Name: "Caption", Size: 12, LineHeight: 1.5, Weight: 400, Usage: "Metadata, fine print"},
	{ID: "micro", Name: "Micro", Size: 11, LineHeight: 1.5, Weight: 400, Usage: "Tooltips and help text (minimum)"},
}

// roleExponents maps role ids to their power of the ratio.
// Roles missing here keep their size on generation.
var roleExponents = map[string]float64{
	"display-xl": 5,
	"heading-xl": 4,
	"heading-lg": 3,
	"heading-md": 2,
	"heading-sm": 1,
	"body-lg":    0.5,
	"body-md":    0,
	"body-sm":    -1,
	"label-md":   -1,
	"label-sm":   -2,
	"caption":    -2,
	"micro":      -3,
}

// DefaultTypeScale returns a fresh copy of the default roles.
func DefaultTypeScale() []TypeScaleItem {
	return slices.Clone(defaultTypeScale)
}

// DefaultTypeScaleItem returns the default of a single role.
func DefaultTypeScaleItem(id string) (TypeScaleItem, bool) {
	for _, item := range defaultTypeScale {
		if item.ID == id {
			return item, true
		}
	}
	return TypeScaleItem{}, false
}

// RoleExponent returns the exponent of a role.
func RoleExponent(id string) (float64, bool) {
	e, ok := roleExponents[id]
	return e, ok
}

// GenerateTypeScale sets size = round(base * ratio^exponent) on every role
// with an exponent. Other fields and unmapped roles are copied unchanged.
// The input slice is not modified.
func GenerateTypeScale(items []TypeScaleItem, base, ratio float64) []TypeScaleItem {
	out := slices.Clone(items)
	for i := range out {
		exp, ok := roleExponents[out[i].ID]
		if !ok {
			continue
		}
		out[i].Size = math.Round(base * math.Pow(ratio, exp))
	}
	return out
}

// FontFamily is a selectable font stack.
type FontFamily struct {
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value" yaml:"value"`
	IsDefault bool   `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
}

var fontFamilies = []FontFamily{
	{
		Name:      "Pretendard",
		Value:     "'Pretendard Variable', Pretendard, -apple-system, BlinkMacSystemFont, system-ui, Roboto, 'Helvetica Neue', sans-serif",
		IsDefault: true,
	},
	{Name: "Inter", Value: "'Inter', -apple-system, BlinkMacSystemFont, sans-serif"},
	{Name: "Noto Sans KR", Value: "'Noto Sans KR', sans-serif"},
	{Name: "Spoqa Han Sans Neo", Value: "'Spoqa Han Sans Neo', sans-serif"},
	{Name: "System UI", Value: "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif"},
}

// FontFamilies returns the selectable font stacks.
func FontFamilies() []FontFamily {
	return slices.Clone(fontFamilies)
}

// DefaultFontFamily returns the family marked as default.
func DefaultFontFamily() FontFamily {
	for _, f := range fontFamilies {
		if f.IsDefault {
			return f
		}
	}
	return fontFamilies[0]
}

// LookupFontFamily finds a family by name.
func LookupFontFamily(name string) (FontFamily, bool) {
	for _, f := range fontFamilies {
		if f.Name == name {
			return f, true
		}
	}
	return FontFamily{}, false
}
