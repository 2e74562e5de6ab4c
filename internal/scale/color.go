package scale

import (
	"image/color"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Stops are the labels of the ten color steps, lightest first.
var Stops = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

const (
	// labStep is one brighten/darken unit in Lab lightness (0..1 range).
	labStep = 0.18

	brightenAmount = 2.5
	darkenAmount   = 3.0

	cacheSize = 256
)

// ColorScale is a 10-step ordered color ramp. Colors[i] is labeled Stops[i].
// An invalid input produces a scale with no colors.
type ColorScale struct {
	Stops  []int
	Colors []string
}

// Len returns the number of colors in the scale.
func (s ColorScale) Len() int {
	return len(s.Colors)
}

// Empty reports whether the scale has no colors.
func (s ColorScale) Empty() bool {
	return len(s.Colors) == 0
}

// Named is a labeled scale entry ready to become a token.
type Named struct {
	Name  string
	Value string
}

var scaleCache, _ = lru.New[string, ColorScale](cacheSize)

// ParseColor resolves a hex literal (#rgb, #rrggbb, with or without the
// leading #) or a CSS named color.
func ParseColor(input string) (colorful.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return colorful.Color{}, false
	}

	if named, ok := colornames.Map[s]; ok {
		return fromRGBA(named), true
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, false
	}
	for _, r := range s[1:] {
		if !isHexDigit(r) {
			return colorful.Color{}, false
		}
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ValidColor reports whether input is an accepted color literal.
func ValidColor(input string) bool {
	_, ok := ParseColor(input)
	return ok
}

// NormalizeHex returns the lowercase #rrggbb form of a color literal.
func NormalizeHex(input string) (string, bool) {
	c, ok := ParseColor(input)
	if !ok {
		return "", false
	}
	return c.Hex(), true
}

// Lightness returns the perceptual (CIE L*) lightness of a color in 0..1.
func Lightness(input string) (float64, bool) {
	c, ok := ParseColor(input)
	if !ok {
		return 0, false
	}
	l, _, _ := c.Lab()
	return l, true
}

// GenerateColorScale builds a 10-step ramp from a single color.
//
// Three anchors (a brightened variant, the input, a darkened variant) are
// interpolated in CIE LCh at evenly spaced positions. Samples outside sRGB
// lose chroma at fixed lightness and hue, so lightness never increases
// from index 0 to index 9.
func GenerateColorScale(input string) ColorScale {
	key := strings.ToLower(strings.TrimSpace(input))
	if cached, ok := scaleCache.Get(key); ok {
		return cached.clone()
	}

	base, ok := ParseColor(input)
	if !ok {
		return ColorScale{}
	}

	h, c, l := base.Hcl()
	anchors := []hcl{
		{h: h, c: c, l: clampUnit(l + labStep*brightenAmount)},
		{h: h, c: c, l: l},
		{h: h, c: c, l: clampUnit(l - labStep*darkenAmount)},
	}

	n := len(Stops)
	result := ColorScale{
		Stops:  append([]int(nil), Stops...),
		Colors: make([]string, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		result.Colors[i] = sampleAnchors(anchors, t).toGamut().Hex()
	}

	scaleCache.Add(key, result.clone())
	return result
}

// ScaleTokens labels each color of the generated scale "{label} {i+1}".
func ScaleTokens(input, label string) []Named {
	s := GenerateColorScale(input)
	out := make([]Named, 0, s.Len())
	for i, c := range s.Colors {
		out = append(out, Named{Name: StepName(label, i), Value: c})
	}
	return out
}

func (s ColorScale) clone() ColorScale {
	return ColorScale{
		Stops:  append([]int(nil), s.Stops...),
		Colors: append([]string(nil), s.Colors...),
	}
}

// hcl is a point in CIE LCh(ab) using go-colorful's ranges.
type hcl struct {
	h, c, l float64
}

// sampleAnchors places t in 0..1 on a polyline through evenly spaced anchors.
func sampleAnchors(anchors []hcl, t float64) hcl {
	segments := len(anchors) - 1
	pos := t * float64(segments)
	idx := int(pos)
	if idx >= segments {
		idx = segments - 1
	}
	local := pos - float64(idx)
	return lerpHcl(anchors[idx], anchors[idx+1], local)
}

func lerpHcl(a, b hcl, t float64) hcl {
	return hcl{
		h: lerpHue(a.h, b.h, t),
		c: a.c + t*(b.c-a.c),
		l: a.l + t*(b.l-a.l),
	}
}

// lerpHue interpolates along the shorter arc of the hue circle.
func lerpHue(a, b, t float64) float64 {
	d := b - a
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	h := a + t*d
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

// toGamut finds the largest chroma that keeps the color inside sRGB.
func (p hcl) toGamut() colorful.Color {
	c := colorful.Hcl(p.h, p.c, p.l)
	if c.IsValid() {
		return c
	}

	lo, hi := 0.0, p.c
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		if colorful.Hcl(p.h, mid, p.l).IsValid() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return colorful.Hcl(p.h, lo, p.l).Clamped()
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}
