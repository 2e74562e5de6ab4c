package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTypeScale_MappedRoles(t *testing.T) {
	for _, r := range Ratios() {
		t.Run(r.Name, func(t *testing.T) {
			items := DefaultTypeScale()
			got := GenerateTypeScale(items, 16, r.Value)
			require.Len(t, got, len(items))

			for i, item := range got {
				exp, ok := RoleExponent(item.ID)
				require.True(t, ok)
				assert.Equal(t, math.Round(16*math.Pow(r.Value, exp)), item.Size, item.ID)

				// Only size changes.
				assert.Equal(t, items[i].LineHeight, item.LineHeight)
				assert.Equal(t, items[i].Weight, item.Weight)
				assert.Equal(t, items[i].LetterSpacing, item.LetterSpacing)
			}
		})
	}
}

func TestGenerateTypeScale_HeadingSmallExample(t *testing.T) {
	got := GenerateTypeScale(DefaultTypeScale(), 16, 1.25)
	for _, item := range got {
		if item.ID == "heading-sm" {
			assert.Equal(t, 20.0, item.Size)
			return
		}
	}
	t.Fatal("heading-sm not found")
}

func TestGenerateTypeScale_UnmappedRoleUntouched(t *testing.T) {
	items := []TypeScaleItem{
		{ID: "body-md", Size: 10},
		{ID: "overline", Name: "Overline", Size: 9, LineHeight: 1.2, Weight: 500},
	}
	got := GenerateTypeScale(items, 18, 1.5)

	assert.Equal(t, 18.0, got[0].Size)
	assert.Equal(t, items[1], got[1])
	// Input is not mutated.
	assert.Equal(t, 10.0, items[0].Size)
}

func TestGenerateTypeScale_Idempotent(t *testing.T) {
	once := GenerateTypeScale(DefaultTypeScale(), 15, 1.333)
	twice := GenerateTypeScale(once, 15, 1.333)
	assert.Equal(t, once, twice)
}

func TestLookupRatio(t *testing.T) {
	r, err := LookupRatio(1.618)
	require.NoError(t, err)
	assert.Equal(t, "Golden Ratio", r.Name)

	_, err = LookupRatio(1.3)
	assert.ErrorIs(t, err, ErrUnknownRatio)

	assert.Len(t, Ratios(), 8)
}

func TestDefaultTypeScale(t *testing.T) {
	items := DefaultTypeScale()
	require.Len(t, items, 12)
	assert.Equal(t, "display-xl", items[0].ID)
	assert.Equal(t, "micro", items[11].ID)

	items[0].Size = 1
	fresh, ok := DefaultTypeScaleItem("display-xl")
	require.True(t, ok)
	assert.Equal(t, 60.0, fresh.Size)
}

func TestFontFamilies(t *testing.T) {
	assert.Equal(t, "Pretendard", DefaultFontFamily().Name)
	assert.Len(t, FontFamilies(), 5)

	f, ok := LookupFontFamily("Inter")
	require.True(t, ok)
	assert.Contains(t, f.Value, "'Inter'")

	_, ok = LookupFontFamily("Comic Sans")
	assert.False(t, ok)
}
