package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

func TestVariableName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Primary 500", want: "--primary-500"},
		{in: "  Font   Family\tPrimary ", want: "--font-family-primary"},
		{in: "Success", want: "--success"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, VariableName(tt.in))
		})
	}
}

func defaultInputs() Inputs {
	return Inputs{
		Tokens:  tokens.Defaults(),
		Radius:  scale.DefaultRadiusScale(),
		Shadows: scale.DefaultShadowLayers(),
		Grid:    scale.DefaultGrids()[scale.Desktop],
		Opacity: scale.DefaultOpacity(),
	}
}

func TestCompose(t *testing.T) {
	m := Compose(defaultInputs())

	assert.Equal(t, "#3b82f6", m["--primary-500"])
	assert.Equal(t, "6px", m["--radius-md"])
	assert.Equal(t, "9999px", m["--radius-full"])
	assert.Equal(t, "0px 4px 6px -1px rgba(0, 0, 0, 0.1)", m["--shadow-layer-3"])
	assert.Equal(t, "12", m["--grid-columns"])
	assert.Equal(t, "24px", m["--grid-gutter"])
	assert.Equal(t, "80px", m["--grid-margin"])
	assert.Equal(t, "0.4", m["--opacity-disabled"])
	assert.Equal(t, "0.95", m["--opacity-pressed"])
}

func TestCompose_LaterTokenWins(t *testing.T) {
	in := defaultInputs()
	in.Tokens = []tokens.Token{
		{ID: "a", Name: "Brand Main", Value: "#111111", Type: tokens.TypeColor},
		{ID: "b", Name: "brand  main", Value: "#222222", Type: tokens.TypeColor},
	}
	assert.Equal(t, "#222222", Compose(in)["--brand-main"])
}

func TestCompose_FullRebuildDropsStaleKeys(t *testing.T) {
	in := defaultInputs()
	before := Compose(in)
	assert.Contains(t, before, "--primary-500")

	in.Tokens = nil
	in.Grid = scale.DefaultGrids()[scale.Mobile]
	after := Compose(in)
	assert.NotContains(t, after, "--primary-500")
	assert.Equal(t, "4", after["--grid-columns"])
}

func TestMap_Style(t *testing.T) {
	m := Map{"--b": "2px", "--a": "#fff"}
	assert.Equal(t, []string{"--a", "--b"}, m.Keys())
	assert.Equal(t, "--a: #fff; --b: 2px;", m.Style())
}
