// Package projection derives Token Store entries from domain store
// snapshots. The projectors are pure; Syncer schedules them with one
// debounced channel per category.
package projection

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Category is a token category kept in sync with a domain store.
type Category string

// Projected categories.
const (
	CategoryColor      Category = "color"
	CategoryTypography Category = "typography"
	CategorySpacing    Category = "spacing"
)

// Categories returns the projected categories in a fixed order.
func Categories() []Category {
	return []Category{CategoryColor, CategoryTypography, CategorySpacing}
}

// TokenType is the Token Store type a category replaces.
func (c Category) TokenType() tokens.Type {
	switch c {
	case CategoryTypography:
		return tokens.TypeTypography
	case CategorySpacing:
		return tokens.TypeSpacing
	}
	return tokens.TypeColor
}

// ColorSnapshot is the upstream input of the color projection.
type ColorSnapshot struct {
	Color stores.ColorState
	Dark  bool
}

// TypographySnapshot is the upstream input of the typography projection.
type TypographySnapshot = stores.TypographyState

// SpacingSnapshot is the upstream input of the spacing projection.
type SpacingSnapshot = stores.SpacingState

// Token names and ids of the color category.
const (
	PrimaryLabel   = "Primary"
	NeutralLabel   = "Neutral"
	ForegroundName = "Primary Foreground"
	ForegroundID   = "primary-foreground"
	FontFamilyName = "Font Family Primary"
	FontFamilyID   = "font-family-primary"
	semanticPrefix = "semantic-"
)

// ProjectColor builds the primary and neutral ramps, the primary
// foreground and one token per semantic role. An invalid base color or an
// unknown brand yields nil, which callers treat as "no update".
func ProjectColor(s ColorSnapshot) []tokens.Token {
	st := s.Color

	var primary, neutral []string
	var solid string
	switch st.Mode {
	case stores.ModeCatalog:
		p, ok := scale.Palette(st.Brand, s.Dark)
		if !ok {
			return nil
		}
		primary, solid = p, p[scale.SolidStep]
		neutral, _ = scale.Palette(st.Neutral, s.Dark)
	default:
		ramp := scale.GenerateColorScale(st.Base)
		if ramp.Empty() {
			return nil
		}
		primary = ramp.Colors
		solid, _ = scale.NormalizeHex(st.Base)
		if seed, ok := scale.Seed(st.Neutral); ok {
			neutral = scale.GenerateColorScale(seed).Colors
		}
	}

	out := make([]tokens.Token, 0, len(primary)+len(neutral)+1+len(stores.SemanticRoles))
	out = appendRamp(out, "primary", PrimaryLabel, primary)
	out = appendRamp(out, "neutral", NeutralLabel, neutral)
	out = append(out, tokens.Token{
		ID:    ForegroundID,
		Name:  ForegroundName,
		Value: scale.Foreground(solid, st.Brand, s.Dark, st.Policy),
		Type:  tokens.TypeColor,
	})

	for _, role := range stores.SemanticRoles {
		p, ok := scale.Palette(st.Semantic[role], s.Dark)
		if !ok {
			continue
		}
		out = append(out, tokens.Token{
			ID:          semanticPrefix + role,
			Name:        titleCase(role),
			Value:       p[scale.SolidStep],
			Type:        tokens.TypeColor,
			Description: st.Semantic[role],
		})
	}
	return out
}

func appendRamp(out []tokens.Token, prefix, label string, colors []string) []tokens.Token {
	for i, c := range colors {
		out = append(out, tokens.Token{
			ID:    fmt.Sprintf("%s-%d", prefix, i+1),
			Name:  scale.StepName(label, i),
			Value: c,
			Type:  tokens.TypeColor,
		})
	}
	return out
}

// ProjectTypography emits one token per type role valued
// "{size}px/{lineHeight}/{weight}" plus the primary font family.
func ProjectTypography(s TypographySnapshot) []tokens.Token {
	if len(s.Scale) == 0 {
		return nil
	}

	out := make([]tokens.Token, 0, len(s.Scale)+1)
	for _, item := range s.Scale {
		out = append(out, tokens.Token{
			ID:          "type-" + item.ID,
			Name:        item.Name,
			Value:       TypeValue(item),
			Type:        tokens.TypeTypography,
			Description: item.Usage,
		})
	}
	family := s.FontFamily()
	out = append(out, tokens.Token{
		ID:          FontFamilyID,
		Name:        FontFamilyName,
		Value:       family.Value,
		Type:        tokens.TypeTypography,
		Description: family.Name,
	})
	return out
}

// TypeValue formats a role as a CSS font shorthand fragment.
func TypeValue(item scale.TypeScaleItem) string {
	return fmt.Sprintf("%spx/%s/%d", formatFloat(item.Size), formatFloat(item.LineHeight), item.Weight)
}

// ProjectSpacing emits one token per spacing step valued "{value}px".
func ProjectSpacing(s SpacingSnapshot) []tokens.Token {
	if len(s.Scale) == 0 {
		return nil
	}

	out := make([]tokens.Token, 0, len(s.Scale))
	for _, item := range s.Scale {
		out = append(out, tokens.Token{
			ID:          item.ID,
			Name:        item.Name,
			Value:       strconv.Itoa(item.Value) + "px",
			Type:        tokens.TypeSpacing,
			Description: item.Usage,
		})
	}
	return out
}

func titleCase(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
