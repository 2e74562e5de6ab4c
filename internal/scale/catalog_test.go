package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalette(t *testing.T) {
	names := append(Brands(), Neutrals()...)
	require.Len(t, names, 31)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			seed, ok := Seed(name)
			require.True(t, ok)

			light, ok := Palette(name, false)
			require.True(t, ok)
			require.Len(t, light, PaletteSteps)
			assert.Equal(t, seed, light[SolidStep])

			firstL, _ := Lightness(light[0])
			lastL, _ := Lightness(light[PaletteSteps-1])
			assert.Greater(t, firstL, lastL)

			dark, ok := Palette(name, true)
			require.True(t, ok)
			require.Len(t, dark, PaletteSteps)
			firstD, _ := Lightness(dark[0])
			lastD, _ := Lightness(dark[PaletteSteps-1])
			assert.Less(t, firstD, lastD)
		})
	}
}

func TestPalette_Unknown(t *testing.T) {
	p, ok := Palette("chartreuse", false)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestOrderNeutrals(t *testing.T) {
	tests := []struct {
		brand string
		want  []string
	}{
		{"blue", []string{"slate", "gray", "mauve", "sage", "olive", "sand"}},
		{"tomato", []string{"mauve", "gray", "slate", "sage", "olive", "sand"}},
		{"amber", []string{"sand", "gray", "mauve", "slate", "sage", "olive"}},
		{"bronze", []string{"gray", "mauve", "slate", "sage", "olive", "sand"}},
	}

	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderNeutrals(tt.brand))
		})
	}
}

func TestTopNeutral(t *testing.T) {
	assert.Equal(t, "slate", TopNeutral("indigo"))
	assert.Equal(t, "olive", TopNeutral("lime"))
	assert.Equal(t, "gray", TopNeutral("gold"))
}

func TestForeground_Denylist(t *testing.T) {
	tests := []struct {
		name  string
		brand string
		dark  bool
		light bool
	}{
		{name: "saturated hue", brand: "blue", light: true},
		{name: "indigo", brand: "indigo", light: true},
		{name: "light hue", brand: "yellow", light: false},
		{name: "light hue in dark mode", brand: "yellow", dark: true, light: true},
		{name: "sky", brand: "sky", light: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, _ := Seed(tt.brand)
			got := Foreground(seed, tt.brand, tt.dark, ForegroundDenylist)
			if tt.light {
				assert.Equal(t, LightForeground, got)
			} else {
				assert.NotEqual(t, LightForeground, got)
				l, ok := Lightness(got)
				require.True(t, ok)
				assert.Less(t, l, 0.4)
			}
		})
	}
}

func TestForeground_Contrast(t *testing.T) {
	assert.Equal(t, LightForeground, Foreground("#3e63dd", "indigo", false, ForegroundContrast))
	assert.NotEqual(t, LightForeground, Foreground("#ffe629", "yellow", false, ForegroundContrast))
}

func TestNearestBrand(t *testing.T) {
	name, ok := NearestBrand("#3b82f6")
	require.True(t, ok)
	assert.False(t, IsLightHue(name))

	name, ok = NearestBrand("#e5484d")
	require.True(t, ok)
	assert.Equal(t, "red", name)

	_, ok = NearestBrand("bogus")
	assert.False(t, ok)
}

func TestContrastRatio(t *testing.T) {
	black, _ := ParseColor("#000000")
	white, _ := ParseColor("#ffffff")
	assert.InDelta(t, 21.0, ContrastRatio(black, white), 0.01)
	assert.InDelta(t, 1.0, ContrastRatio(white, white), 1e-9)
}

func TestParseForegroundPolicy(t *testing.T) {
	p, err := ParseForegroundPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ForegroundDenylist, p)

	p, err = ParseForegroundPolicy("contrast")
	require.NoError(t, err)
	assert.Equal(t, ForegroundContrast, p)

	_, err = ParseForegroundPolicy("wcag3")
	assert.Error(t, err)
}
