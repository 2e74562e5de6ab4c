package stores

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

func countChanges(n interface{ OnChange(func()) }) *int {
	count := new(int)
	n.OnChange(func() { *count++ })
	return count
}

func TestColorStore_SetBase(t *testing.T) {
	s := NewColorStore()
	changes := countChanges(s)

	s.SetBase("#e5484d")
	st := s.Snapshot()
	assert.Equal(t, ModeCustom, st.Mode)
	assert.Equal(t, "#e5484d", st.Base)
	assert.Equal(t, "red", st.Brand)
	assert.Equal(t, scale.TopNeutral("red"), st.Neutral)
	assert.Equal(t, 1, *changes)

	s.SetBase("not-a-color")
	assert.Equal(t, "not-a-color", s.Snapshot().Base)
	assert.Equal(t, "red", s.Snapshot().Brand)
}

func TestColorStore_AutoNeutralOff(t *testing.T) {
	s := NewColorStore()
	s.SetAutoNeutral(false)
	require.NoError(t, s.SetNeutral("sand"))

	require.NoError(t, s.SetBrand("grass"))
	st := s.Snapshot()
	assert.Equal(t, ModeCatalog, st.Mode)
	assert.Equal(t, "sand", st.Neutral)
}

func TestColorStore_Validation(t *testing.T) {
	s := NewColorStore()
	assert.ErrorIs(t, s.SetBrand("chartreuse"), ErrUnknownItem)
	assert.ErrorIs(t, s.SetNeutral("blue"), ErrUnknownItem)
	assert.ErrorIs(t, s.SetSemantic("critical", "red"), ErrUnknownItem)
	assert.ErrorIs(t, s.SetSemantic("success", "slate"), ErrUnknownItem)

	require.NoError(t, s.SetSemantic("success", "teal"))
	assert.Equal(t, "teal", s.Snapshot().Semantic["success"])

	s.Reset()
	assert.Equal(t, DefaultColorState(), s.Snapshot())
}

func TestColorStore_SnapshotIsolated(t *testing.T) {
	s := NewColorStore()
	snap := s.Snapshot()
	snap.Semantic["success"] = "pink"
	assert.Equal(t, "green", s.Snapshot().Semantic["success"])
}

func TestBuilderStore(t *testing.T) {
	s := NewBuilderStore()
	changes := countChanges(s)
	selects := 0
	s.OnSelect(func() { selects++ })

	_, ok := s.Selection()
	assert.False(t, ok)

	s.Select("primary-500", SelectToken)
	sel, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, Selection{ID: "primary-500", Kind: SelectToken}, sel)

	s.SetDark(false)
	assert.Equal(t, 0, *changes, "setting the same mode does not notify")

	s.ToggleDark()
	assert.True(t, s.Dark())

	s.Clear()
	_, ok = s.Selection()
	assert.False(t, ok)
	assert.Equal(t, 1, *changes, "only dark-mode changes reach OnChange")
	assert.Equal(t, 2, selects)
}

func TestParseSelectionKind(t *testing.T) {
	tests := []struct {
		in      string
		want    SelectionKind
		wantErr bool
	}{
		{in: "", want: SelectToken},
		{in: "component", want: SelectComponent},
		{in: "typography", want: SelectTypography},
		{in: "layer", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSelectionKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypographyStore_Generate(t *testing.T) {
	s := NewTypographyStore(persist.NewMemory(), logging.Nop())

	require.NoError(t, s.Generate(16, 1.25))
	st := s.Snapshot()
	i := indexOf(st.Scale, func(it scale.TypeScaleItem) bool { return it.ID == "heading-sm" })
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 20.0, st.Scale[i].Size)
	assert.Equal(t, 16.0, st.BaseSize)

	assert.ErrorIs(t, s.Generate(0, 1.25), ErrOutOfRange)
	assert.ErrorIs(t, s.Generate(16, 1.3), scale.ErrUnknownRatio)
}

func TestTypographyStore_RejectsNonFinite(t *testing.T) {
	s := NewTypographyStore(nil, logging.Nop())
	before := s.Snapshot()

	for _, base := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.ErrorIs(t, s.Generate(base, 1.25), ErrOutOfRange)
	}

	patches := map[string]TypePatch{
		"nan size":           {Size: tokens.Ptr(math.NaN())},
		"infinite size":      {Size: tokens.Ptr(math.Inf(1))},
		"zero size":          {Size: tokens.Ptr(0.0)},
		"nan line height":    {LineHeight: tokens.Ptr(math.NaN())},
		"inf letter spacing": {LetterSpacing: tokens.Ptr(math.Inf(-1))},
	}
	for name, p := range patches {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.UpdateItem("body-md", p), ErrOutOfRange)
		})
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestTypographyStore_ItemsAndFont(t *testing.T) {
	s := NewTypographyStore(nil, logging.Nop())

	require.NoError(t, s.UpdateItem("body-md", TypePatch{Weight: tokens.Ptr(500)}))
	st := s.Snapshot()
	i := indexOf(st.Scale, func(it scale.TypeScaleItem) bool { return it.ID == "body-md" })
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 500, st.Scale[i].Weight)

	assert.ErrorIs(t, s.UpdateItem("hero", TypePatch{}), ErrUnknownItem)
	assert.ErrorIs(t, s.SelectFont("Comic Sans"), ErrUnknownItem)

	require.NoError(t, s.ResetItem("body-md"))
	def, _ := scale.DefaultTypeScaleItem("body-md")
	assert.Equal(t, def, s.Snapshot().Scale[i])
}

func TestTypographyStore_Reorder(t *testing.T) {
	s := NewTypographyStore(nil, logging.Nop())
	st := s.Snapshot()

	ids := make([]string, len(st.Scale))
	for i, it := range st.Scale {
		ids[len(ids)-1-i] = it.ID
	}
	require.NoError(t, s.Reorder(ids))
	assert.Equal(t, st.Scale[0].ID, s.Snapshot().Scale[len(ids)-1].ID)

	dup := append([]string{ids[0]}, ids[:len(ids)-1]...)
	assert.ErrorIs(t, s.Reorder(dup), ErrUnknownItem)
	assert.Error(t, s.Reorder(ids[:2]))
}

func TestTypographyStore_Persists(t *testing.T) {
	adapter := persist.NewMemory()
	first := NewTypographyStore(adapter, logging.Nop())
	fonts := scale.FontFamilies()
	require.NoError(t, first.SelectFont(fonts[len(fonts)-1].Name))

	second := NewTypographyStore(adapter, logging.Nop())
	assert.Equal(t, fonts[len(fonts)-1].Name, second.Snapshot().Font)
}

func TestSpacingStore(t *testing.T) {
	s := NewSpacingStore()
	assert.Equal(t, 4, s.BaseUnit())

	first := s.Snapshot().Scale[0].ID
	require.NoError(t, s.UpdateItem(first, 99))
	assert.Equal(t, 99, s.Snapshot().Scale[0].Value)
	assert.ErrorIs(t, s.UpdateItem(first, -1), ErrOutOfRange)
	assert.ErrorIs(t, s.UpdateItem("nope", 4), ErrUnknownItem)

	require.NoError(t, s.Generate(8))
	assert.Equal(t, 8, s.BaseUnit())
	want, err := scale.GenerateSpacingScale(8)
	require.NoError(t, err)
	assert.Equal(t, want, s.Snapshot().Scale)

	assert.ErrorIs(t, s.Generate(6), scale.ErrUnsupportedBaseUnit)
	assert.Equal(t, 8, s.BaseUnit())

	// Switching the base unit discards manual step edits.
	require.NoError(t, s.UpdateItem("space-2", 99))
	require.NoError(t, s.Generate(4))
	require.NoError(t, s.Generate(8))
	assert.Equal(t, want, s.Snapshot().Scale)

	s.Reset()
	assert.Equal(t, scale.DefaultSpacingScale(8), s.Snapshot().Scale)
}

func TestRadiusStore(t *testing.T) {
	s := NewRadiusStore()
	require.NoError(t, s.Update("md", 10))
	v, ok := s.Snapshot().Value("md")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	assert.ErrorIs(t, s.Update("huge", 1), ErrUnknownItem)
	assert.ErrorIs(t, s.Select("huge"), ErrUnknownItem)

	s.Reset()
	v, _ = s.Snapshot().Value("md")
	assert.Equal(t, 6, v)
}

func TestShadowStore(t *testing.T) {
	adapter := persist.NewMemory()
	s := NewShadowStore(adapter, logging.Nop())

	assert.Equal(t, "0px 1px 2px 0px rgba(0, 0, 0, 0.05)", s.ShadowString("layer-1"))
	assert.Equal(t, "none", s.ShadowString("layer-9"))

	require.NoError(t, s.UpdateLayer("layer-1", ShadowPatch{Color: tokens.Ptr("#ff0000"), Opacity: tokens.Ptr(0.5)}))
	assert.Equal(t, "0px 1px 2px 0px rgba(255, 0, 0, 0.5)", s.ShadowString("layer-1"))

	assert.ErrorIs(t, s.UpdateLayer("layer-1", ShadowPatch{Opacity: tokens.Ptr(1.5)}), ErrOutOfRange)
	assert.ErrorIs(t, s.UpdateLayer("layer-9", ShadowPatch{}), ErrUnknownItem)
	assert.ErrorIs(t, s.UpdateLayer("layer-1", ShadowPatch{X: tokens.Ptr(math.Inf(1))}), ErrOutOfRange)
	assert.ErrorIs(t, s.UpdateLayer("layer-1", ShadowPatch{Spread: tokens.Ptr(math.NaN())}), ErrOutOfRange)

	reloaded := NewShadowStore(adapter, logging.Nop())
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())

	s.Reset()
	assert.Equal(t, scale.DefaultShadowLayers(), s.Snapshot().Layers)
}

func TestLayoutStore(t *testing.T) {
	adapter := persist.NewMemory()
	s := NewLayoutStore(adapter, logging.Nop())
	assert.Equal(t, scale.Desktop, s.Snapshot().Active)

	require.NoError(t, s.UpdateGrid(scale.Tablet, GridPatch{Columns: tokens.Ptr(6)}))
	require.NoError(t, s.SetActive(scale.Tablet))
	s.ToggleOverlay()

	st := s.Snapshot()
	assert.Equal(t, 6, st.ActiveGrid().Columns)
	assert.True(t, st.Overlay)

	assert.ErrorIs(t, s.UpdateGrid(scale.Tablet, GridPatch{Columns: tokens.Ptr(0)}), ErrOutOfRange)
	assert.ErrorIs(t, s.SetActive("watch"), ErrUnknownItem)

	reloaded := NewLayoutStore(adapter, logging.Nop())
	assert.Equal(t, st, reloaded.Snapshot())

	s.Reset()
	st = s.Snapshot()
	assert.Equal(t, scale.DefaultGrids(), st.Grids)
	assert.Equal(t, scale.Desktop, st.Active)
	assert.True(t, st.Overlay)
}

func TestInteractionStore(t *testing.T) {
	adapter := persist.NewMemory()
	s := NewInteractionStore(adapter, logging.Nop())
	changes := countChanges(s)

	require.NoError(t, s.Update(scale.OpacityHover, 0.8))
	assert.Equal(t, 0.8, s.Snapshot().Hover)

	tests := []float64{-0.1, 1.01}
	for _, v := range tests {
		assert.ErrorIs(t, s.Update(scale.OpacityHover, v), ErrOutOfRange)
	}
	assert.ErrorIs(t, s.Update("focus", 0.5), ErrUnknownItem)
	assert.Equal(t, 1, *changes)

	reloaded := NewInteractionStore(adapter, logging.Nop())
	assert.Equal(t, 0.8, reloaded.Snapshot().Hover)

	s.Reset()
	assert.Equal(t, scale.DefaultOpacity(), s.Snapshot())
}

func TestPersisted_CorruptFallsBack(t *testing.T) {
	adapter := persist.NewMemory()
	require.NoError(t, adapter.Set(persist.KeyShadow, []byte("::: not yaml")))

	s := NewShadowStore(adapter, logging.Nop())
	assert.Equal(t, scale.DefaultShadowLayers(), s.Snapshot().Layers)
}
