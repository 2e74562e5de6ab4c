package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

const sampleDesign = `
dark: false
color:
  base: "#e5484d"
  neutral: mauve
  semantic:
    info: cyan
typography:
  font: Inter
  ratio: 1.333
  items:
    caption:
      usage: Footnotes
spacing:
  baseUnit: 8
  overrides:
    space-1: 10
radius:
  md: 10
shadows:
  layer-1:
    blur: 4
layout:
  active: tablet
  grids:
    tablet:
      columns: 6
interaction:
  hover: 0.2
tokens:
  - id: brand-accent
    name: Brand Accent
    value: "#ff00aa"
    type: color
`

func TestParseDesign(t *testing.T) {
	d, err := ParseDesign([]byte(sampleDesign))
	require.NoError(t, err)

	require.NotNil(t, d.Color)
	assert.Equal(t, "#e5484d", d.Color.Base)
	require.NotNil(t, d.Spacing)
	assert.Equal(t, 8, d.Spacing.BaseUnit)
	assert.Equal(t, 10, d.Radius["md"])
	require.NotNil(t, d.Shadows["layer-1"].Blur)
	assert.InDelta(t, 4.0, *d.Shadows["layer-1"].Blur, 1e-9)
	require.NotNil(t, d.Layout.Grids["tablet"].Columns)
	assert.Equal(t, 6, *d.Layout.Grids["tablet"].Columns)
	assert.InDelta(t, 0.2, d.Interaction[scale.OpacityHover], 1e-9)
	require.Len(t, d.Tokens, 1)
	assert.Equal(t, tokens.TypeColor, d.Tokens[0].Type)
}

func TestParseDesign_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad color", "color:\n  base: notacolor\n"},
		{"unknown brand", "color:\n  brand: chartreuse\n"},
		{"unknown neutral", "color:\n  neutral: beige\n"},
		{"bad mode", "color:\n  mode: random\n"},
		{"bad semantic role", "color:\n  semantic:\n    notice: blue\n"},
		{"bad ratio", "typography:\n  ratio: 1.3\n"},
		{"unknown font", "typography:\n  font: Comic Sans\n"},
		{"bad base unit", "spacing:\n  baseUnit: 5\n"},
		{"negative radius", "radius:\n  md: -1\n"},
		{"bad breakpoint", "layout:\n  active: watch\n"},
		{"bad grid key", "layout:\n  grids:\n    watch:\n      columns: 2\n"},
		{"opacity above one", "interaction:\n  hover: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDesign([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestParseDesign_MalformedYAML(t *testing.T) {
	_, err := ParseDesign([]byte("color: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidValue)
}

func TestLoadDesign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDesign), 0o600))

	d, err := LoadDesign(path)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Radius["md"])

	_, err = LoadDesign(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyDesign(t *testing.T) {
	h := newHarness(t)
	d, err := ParseDesign([]byte(sampleDesign))
	require.NoError(t, err)

	require.NoError(t, h.app.ApplyDesign(d))

	color := h.app.Color.Snapshot()
	assert.Equal(t, stores.ModeCustom, color.Mode)
	assert.Equal(t, "mauve", color.Neutral)
	assert.Equal(t, "cyan", color.Semantic["info"])

	assert.InDelta(t, 1.333, h.app.Typography.Snapshot().Ratio, 1e-9)
	assert.Equal(t, "Footnotes", typeItem(t, h.app, "caption").Usage)

	// The base-unit change is applied without the confirm gate.
	assert.Equal(t, 8, h.app.Spacing.BaseUnit())
	assert.Empty(t, h.app.confirm.ArmedKey())
	step, ok := h.app.Tokens.Get("space-1")
	require.True(t, ok)
	assert.Equal(t, "10px", step.Value)

	m := h.app.Theme()
	assert.Equal(t, "10px", m["--radius-md"])
	assert.Equal(t, "6", m["--grid-columns"])
	assert.Equal(t, "0.2", m["--opacity-hover"])
	assert.Equal(t, "#ff00aa", m["--brand-accent"])

	// Projections ran synchronously, nothing is left pending.
	assert.Equal(t, 0, h.clock.Pending())
	primary, ok := h.app.Tokens.Get("primary-1")
	require.True(t, ok)
	assert.NotEmpty(t, primary.Value)
}

func TestApplyDesign_UpsertsTokens(t *testing.T) {
	h := newHarness(t)

	d := Design{Tokens: []tokens.Token{{ID: "space-md", Name: "Medium", Value: "1rem"}}}
	require.NoError(t, h.app.ApplyDesign(d))

	tok, ok := h.app.Tokens.Get("space-md")
	require.True(t, ok)
	assert.Equal(t, "1rem", tok.Value)
	assert.Equal(t, tokens.TypeSpacing, tok.Type)
}

func TestApplyDesign_DarkOnlyWhenSet(t *testing.T) {
	h := newHarness(t)

	on, err := ParseDesign([]byte("dark: true\n"))
	require.NoError(t, err)
	require.NoError(t, h.app.ApplyDesign(on))
	assert.True(t, h.app.Builder.Dark())

	absent, err := ParseDesign([]byte("radius:\n  md: 9\n"))
	require.NoError(t, err)
	assert.Nil(t, absent.Dark)
	require.NoError(t, h.app.ApplyDesign(absent))
	assert.True(t, h.app.Builder.Dark())

	off, err := ParseDesign([]byte("dark: false\n"))
	require.NoError(t, err)
	require.NoError(t, h.app.ApplyDesign(off))
	assert.False(t, h.app.Builder.Dark())
}

func TestApplyDesign_RejectsInvalid(t *testing.T) {
	h := newHarness(t)
	before := h.app.Spacing.Snapshot()

	err := h.app.ApplyDesign(Design{Spacing: &SpacingDesign{BaseUnit: 5}})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, before, h.app.Spacing.Snapshot())
}

func TestApplyDesign_JoinsStoreErrors(t *testing.T) {
	h := newHarness(t)

	err := h.app.ApplyDesign(Design{Radius: map[string]int{"huge": 4, "md": 9}})
	assert.ErrorIs(t, err, stores.ErrUnknownItem)
	assert.Equal(t, "9px", h.app.Theme()["--radius-md"])
}
