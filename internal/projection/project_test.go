package projection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

func namesWithPrefix(toks []tokens.Token, prefix string) []string {
	var out []string
	for _, t := range toks {
		if strings.HasPrefix(t.Name, prefix) {
			out = append(out, t.Name)
		}
	}
	return out
}

func TestProjectColor_BrandScenario(t *testing.T) {
	color := stores.NewColorStore()
	color.SetBase("#3b82f6")
	require.NoError(t, color.SetNeutral("slate"))

	toks := ProjectColor(ColorSnapshot{Color: color.Snapshot()})

	primary := namesWithPrefix(toks, "Primary ")
	neutral := namesWithPrefix(toks, "Neutral ")
	assert.Len(t, primary, 11, "ten steps plus the foreground")
	assert.Len(t, neutral, 10)
	assert.Contains(t, primary, "Primary 1")
	assert.Contains(t, primary, "Primary 10")

	fg := findByName(t, toks, ForegroundName)
	assert.Equal(t, "#ffffff", fg.Value)
	for _, tok := range toks {
		assert.Equal(t, tokens.TypeColor, tok.Type)
	}
}

func TestProjectColor_Catalog(t *testing.T) {
	st := stores.DefaultColorState()
	st.Mode = stores.ModeCatalog
	st.Brand = "amber"
	st.Neutral = "sand"

	toks := ProjectColor(ColorSnapshot{Color: st})
	assert.Len(t, namesWithPrefix(toks, "Neutral "), scale.PaletteSteps)

	palette, ok := scale.Palette("amber", false)
	require.True(t, ok)
	assert.Equal(t, palette[scale.SolidStep], findByName(t, toks, "Primary 9").Value)
	assert.Equal(t, palette[scale.PaletteSteps-1], findByName(t, toks, ForegroundName).Value,
		"light hues get dark text in light mode")

	dark := ProjectColor(ColorSnapshot{Color: st, Dark: true})
	assert.Equal(t, scale.LightForeground, findByName(t, dark, ForegroundName).Value)

	green, _ := scale.Palette("green", false)
	assert.Equal(t, green[scale.SolidStep], findByName(t, toks, "Success").Value)
}

func TestProjectColor_InvalidInputIsNoUpdate(t *testing.T) {
	st := stores.DefaultColorState()
	st.Base = "#12345"
	assert.Nil(t, ProjectColor(ColorSnapshot{Color: st}))

	st.Mode = stores.ModeCatalog
	st.Brand = "chartreuse"
	assert.Nil(t, ProjectColor(ColorSnapshot{Color: st}))
}

func TestProjectTypography(t *testing.T) {
	st := stores.DefaultTypographyState()
	toks := ProjectTypography(st)
	require.Len(t, toks, len(st.Scale)+1)

	heading := findByName(t, toks, "Heading SM")
	assert.Equal(t, "type-heading-sm", heading.ID)
	assert.Equal(t, "20px/1.35/600", heading.Value)
	assert.Equal(t, "Card and module title", heading.Description)

	family := findByName(t, toks, FontFamilyName)
	assert.Equal(t, FontFamilyID, family.ID)
	assert.Equal(t, scale.DefaultFontFamily().Value, family.Value)

	assert.Nil(t, ProjectTypography(TypographySnapshot{}))
}

func TestProjectSpacing(t *testing.T) {
	items, err := scale.GenerateSpacingScale(8)
	require.NoError(t, err)

	toks := ProjectSpacing(SpacingSnapshot{BaseUnit: 8, Scale: items})
	require.Len(t, toks, len(items))
	assert.Equal(t, "8px", toks[0].Value)
	assert.Equal(t, "Base Unit", toks[0].Description)
	assert.Equal(t, tokens.TypeSpacing, toks[0].Type)

	assert.Nil(t, ProjectSpacing(SpacingSnapshot{}))
}

func findByName(t *testing.T, toks []tokens.Token, name string) tokens.Token {
	t.Helper()
	for _, tok := range toks {
		if tok.Name == name {
			return tok
		}
	}
	require.Failf(t, "token not found", "no token named %q", name)
	return tokens.Token{}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"success", "Success"},
		{"élan", "Élan"},
		{"ñandú", "Ñandú"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in))
	}
}
