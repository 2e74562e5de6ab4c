package scale

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSteps is the length of every catalog palette.
const PaletteSteps = 12

// SolidStep is the index of the solid (step 9) color in a catalog palette.
const SolidStep = 8

// Hue is a named catalog entry seeded by its solid color.
type Hue struct {
	Name string
	Seed string
}

var brandHues = []Hue{
	{"tomato", "#e54d2e"},
	{"red", "#e5484d"},
	{"ruby", "#e54666"},
	{"crimson", "#e93d82"},
	{"pink", "#d6409f"},
	{"plum", "#ab4aba"},
	{"purple", "#8e4ec6"},
	{"violet", "#6e56cf"},
	{"iris", "#5b5bd6"},
	{"indigo", "#3e63dd"},
	{"blue", "#0090ff"},
	{"cyan", "#00a2c7"},
	{"teal", "#12a594"},
	{"jade", "#29a383"},
	{"green", "#30a46c"},
	{"grass", "#46a758"},
	{"bronze", "#a18072"},
	{"gold", "#978365"},
	{"brown", "#ad7f58"},
	{"orange", "#f76b15"},
	{"amber", "#ffc53d"},
	{"yellow", "#ffe629"},
	{"lime", "#bdee63"},
	{"mint", "#86ead4"},
	{"sky", "#7ce2fe"},
}

var neutralHues = []Hue{
	{"gray", "#8d8d8d"},
	{"mauve", "#8e8c99"},
	{"slate", "#8b8d98"},
	{"sage", "#868e8b"},
	{"olive", "#898e87"},
	{"sand", "#8d8d86"},
}

// lightHues need dark foreground text on their solid step.
var lightHues = map[string]bool{
	"sky":    true,
	"mint":   true,
	"lime":   true,
	"yellow": true,
	"amber":  true,
}

// neutralRecommendations lists, per brand hue, the neutral families that
// pair with it in priority order.
var neutralRecommendations = map[string][]string{
	"tomato":  {"mauve"},
	"red":     {"mauve"},
	"ruby":    {"mauve"},
	"crimson": {"mauve"},
	"pink":    {"mauve"},
	"plum":    {"mauve"},
	"purple":  {"mauve"},
	"violet":  {"mauve"},
	"iris":    {"slate"},
	"indigo":  {"slate"},
	"blue":    {"slate"},
	"sky":     {"slate"},
	"cyan":    {"slate"},
	"mint":    {"sage"},
	"teal":    {"sage"},
	"jade":    {"sage"},
	"green":   {"sage"},
	"grass":   {"olive"},
	"lime":    {"olive"},
	"yellow":  {"sand"},
	"amber":   {"sand"},
	"orange":  {"sand"},
	"brown":   {"sand"},
}

// Per-step lightness targets and chroma factors relative to the seed.
// Index SolidStep is the seed itself; the two steps after it derive from
// the seed lightness.
var (
	lightTargets = []float64{0.99, 0.975, 0.945, 0.91, 0.87, 0.82, 0.75, 0.66}
	darkTargets  = []float64{0.08, 0.11, 0.16, 0.20, 0.24, 0.29, 0.35, 0.44}
	chromaFactor = []float64{0.03, 0.07, 0.15, 0.25, 0.35, 0.45, 0.6, 0.8, 1, 1, 0.9, 0.5}
)

// Brands returns the brand hue names in catalog order.
func Brands() []string {
	return hueNames(brandHues)
}

// Neutrals returns the neutral family names in catalog order.
func Neutrals() []string {
	return hueNames(neutralHues)
}

// IsBrand reports whether name is a brand hue.
func IsBrand(name string) bool {
	_, ok := findHue(brandHues, name)
	return ok
}

// IsNeutral reports whether name is a neutral family.
func IsNeutral(name string) bool {
	_, ok := findHue(neutralHues, name)
	return ok
}

// Seed returns the solid color a brand or neutral palette is built from.
func Seed(name string) (string, bool) {
	if h, ok := findHue(brandHues, name); ok {
		return h.Seed, true
	}
	if h, ok := findHue(neutralHues, name); ok {
		return h.Seed, true
	}
	return "", false
}

// Palette returns the 12-step palette of a brand or neutral family.
// The light variant runs from lightest background to darkest text; the
// dark variant runs from darkest background to lightest text.
func Palette(name string, dark bool) ([]string, bool) {
	seed, ok := Seed(name)
	if !ok {
		return nil, false
	}
	base, _ := ParseColor(seed)
	return buildPalette(base, dark), true
}

func buildPalette(seed colorful.Color, dark bool) []string {
	h, c, l := seed.Hcl()

	targets := lightTargets
	after := []float64{l - 0.04, min(l-0.12, 0.45), 0.22}
	if dark {
		targets = darkTargets
		after = []float64{l + 0.04, max(l+0.12, 0.75), 0.94}
	}

	out := make([]string, 0, PaletteSteps)
	for i, tl := range targets {
		out = append(out, hcl{h: h, c: c * chromaFactor[i], l: tl}.toGamut().Hex())
	}
	out = append(out, seed.Hex())
	for i, tl := range after {
		idx := SolidStep + 1 + i
		out = append(out, hcl{h: h, c: c * chromaFactor[idx], l: clampUnit(tl)}.toGamut().Hex())
	}
	return out
}

// RecommendedNeutrals returns the neutral families recommended for a brand
// hue in priority order. Unknown hues have no recommendation.
func RecommendedNeutrals(brand string) []string {
	return slices.Clone(neutralRecommendations[brand])
}

// OrderNeutrals lists every neutral family with the recommended families for
// brand first (in recommendation priority) and the rest in catalog order.
func OrderNeutrals(brand string) []string {
	recommended := neutralRecommendations[brand]
	out := make([]string, 0, len(neutralHues))
	out = append(out, recommended...)
	for _, n := range neutralHues {
		if !slices.Contains(recommended, n.Name) {
			out = append(out, n.Name)
		}
	}
	return out
}

// TopNeutral returns the first recommended neutral for brand, or gray.
func TopNeutral(brand string) string {
	if rec := neutralRecommendations[brand]; len(rec) > 0 {
		return rec[0]
	}
	return "gray"
}

// IsLightHue reports whether brand is on the light-hue list.
func IsLightHue(brand string) bool {
	return lightHues[brand]
}

// NearestBrand returns the brand hue whose seed is perceptually closest
// (CIEDE2000) to the given color.
func NearestBrand(input string) (string, bool) {
	c, ok := ParseColor(input)
	if !ok {
		return "", false
	}

	best := ""
	bestDist := 0.0
	for _, h := range brandHues {
		seed, _ := ParseColor(h.Seed)
		d := c.DistanceCIEDE2000(seed)
		if best == "" || d < bestDist {
			best, bestDist = h.Name, d
		}
	}
	return best, true
}

// ForegroundPolicy selects how the text color on a solid brand fill is chosen.
type ForegroundPolicy string

const (
	// ForegroundDenylist uses the fixed light-hue list.
	ForegroundDenylist ForegroundPolicy = "denylist"
	// ForegroundContrast picks whichever candidate has the higher WCAG
	// contrast ratio against the solid color.
	ForegroundContrast ForegroundPolicy = "contrast"
)

// LightForeground is the foreground used on dark or saturated fills.
const LightForeground = "#ffffff"

// ParseForegroundPolicy validates a policy name. Empty means denylist.
func ParseForegroundPolicy(s string) (ForegroundPolicy, error) {
	switch ForegroundPolicy(s) {
	case "", ForegroundDenylist:
		return ForegroundDenylist, nil
	case ForegroundContrast:
		return ForegroundContrast, nil
	}
	return "", fmt.Errorf("unknown foreground policy %q", s)
}

// Foreground returns the text color to place on solid for a brand hue.
//
// With the denylist policy dark mode always yields the light foreground,
// and a light hue yields the darkest step of its light palette. With the
// contrast policy the candidate with the larger WCAG ratio wins.
func Foreground(solid, brand string, dark bool, policy ForegroundPolicy) string {
	darkText := darkForeground(brand)

	if policy == ForegroundContrast {
		bg, ok := ParseColor(solid)
		if !ok {
			return LightForeground
		}
		light, _ := ParseColor(LightForeground)
		text, _ := ParseColor(darkText)
		if ContrastRatio(text, bg) > ContrastRatio(light, bg) {
			return darkText
		}
		return LightForeground
	}

	if dark {
		return LightForeground
	}
	if IsLightHue(brand) {
		return darkText
	}
	return LightForeground
}

func darkForeground(brand string) string {
	if p, ok := Palette(brand, false); ok {
		return p[PaletteSteps-1]
	}
	return "#1c2024"
}

// RelativeLuminance is the WCAG 2 relative luminance of c.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio is the WCAG 2 contrast ratio between two colors (1..21).
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func hueNames(hues []Hue) []string {
	out := make([]string, len(hues))
	for i, h := range hues {
		out[i] = h.Name
	}
	return out
}

func findHue(hues []Hue, name string) (Hue, bool) {
	for _, h := range hues {
		if h.Name == name {
			return h, true
		}
	}
	return Hue{}, false
}
