// Package theme composes the flat CSS custom-property map rendered by the
// preview. The map is rebuilt in full from its inputs on every change.
package theme

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Prefix marks every composed key as a CSS custom property.
const Prefix = "--"

// Map is a composed variable map from key to CSS literal.
type Map map[string]string

// Inputs are the snapshots a Map is built from.
type Inputs struct {
	Tokens  []tokens.Token
	Radius  []scale.RadiusItem
	Shadows []scale.ShadowLayer
	Grid    scale.GridConfig
	Opacity scale.Opacity
}

// VariableName derives a token's key from its display name: lowercased,
// whitespace runs collapsed to one hyphen, trimmed and prefixed.
func VariableName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace)
	return Prefix + strings.Join(fields, "-")
}

// Compose builds a fresh map. Tokens come first in store order, so a later
// token whose name derives the same key wins. Store-owned dimensions use
// fixed id-based keys.
func Compose(in Inputs) Map {
	m := make(Map, len(in.Tokens)+len(in.Radius)+len(in.Shadows)+7)

	for _, t := range in.Tokens {
		if strings.TrimSpace(t.Name) == "" {
			continue
		}
		m[VariableName(t.Name)] = t.Value
	}
	for _, r := range in.Radius {
		m[Prefix+"radius-"+r.ID] = strconv.Itoa(r.Value) + "px"
	}
	for _, l := range in.Shadows {
		m[Prefix+"shadow-"+l.ID] = scale.ShadowCSS(l)
	}

	m[Prefix+"grid-columns"] = strconv.Itoa(in.Grid.Columns)
	m[Prefix+"grid-gutter"] = strconv.Itoa(in.Grid.Gutter) + "px"
	m[Prefix+"grid-margin"] = strconv.Itoa(in.Grid.Margin) + "px"

	for _, st := range scale.OpacityStates() {
		m[Prefix+"opacity-"+string(st)] = strconv.FormatFloat(in.Opacity.Get(st), 'f', -1, 64)
	}
	return m
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Style renders the map as an inline style attribute value.
func (m Map) Style() string {
	var b strings.Builder
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(m[k])
		b.WriteByte(';')
	}
	return b.String()
}
