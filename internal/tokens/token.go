// Package tokens implements the canonical token collection: the flattened,
// named tokens every downstream consumer reads colors, typography and
// spacing from.
package tokens

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	// ErrNotFound is returned when no token has the requested id.
	ErrNotFound = errors.New("token not found")
	// ErrDuplicateID is returned when an id is already taken.
	ErrDuplicateID = errors.New("duplicate token id")
	// ErrInvalidID is returned for ids that cannot be a CSS custom property name.
	ErrInvalidID = errors.New("invalid token id")
)

// ValidID reports whether id can follow "--" in a custom property name
// without escaping: letters, digits, '-' and '_' only.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r != '-' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Type is the category of a token.
type Type string

// Token categories in export order.
const (
	TypeColor        Type = "color"
	TypeSpacing      Type = "spacing"
	TypeTypography   Type = "typography"
	TypeBorderRadius Type = "borderRadius"
	TypeShadow       Type = "shadow"
)

// Types returns every token type in export order.
func Types() []Type {
	return []Type{TypeColor, TypeSpacing, TypeTypography, TypeBorderRadius, TypeShadow}
}

// Label is the human-readable group header of a type.
func (t Type) Label() string {
	switch t {
	case TypeColor:
		return "Colors"
	case TypeSpacing:
		return "Spacing"
	case TypeTypography:
		return "Typography"
	case TypeBorderRadius:
		return "Border Radius"
	case TypeShadow:
		return "Shadows"
	}
	return string(t)
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType validates a type name.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown token type %q", s)
	}
	return t, nil
}

// Token is a named, typed design primitive.
type Token struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Type        Type   `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	Value       *string `json:"value,omitempty"`
	Type        *Type   `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p Patch) apply(t Token) Token {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Value != nil {
		t.Value = *p.Value
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	return t
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

var initialTokens = []Token{
	{ID: "primary-500", Name: "Primary 500", Value: "#3b82f6", Type: TypeColor},
	{ID: "neutral-50", Name: "Neutral 50", Value: "#f9fafb", Type: TypeColor},
	{ID: "neutral-900", Name: "Neutral 900", Value: "#111827", Type: TypeColor},
	{ID: "spacing-4", Name: "Spacing 4", Value: "1rem", Type: TypeSpacing},
	{ID: "spacing-2", Name: "Spacing 2", Value: "0.5rem", Type: TypeSpacing},
	{ID: "font-base", Name: "Base Font", Value: "Inter, sans-serif", Type: TypeTypography},
}

// Defaults returns the token set a new session starts with.
func Defaults() []Token {
	out := make([]Token, len(initialTokens))
	copy(out, initialTokens)
	return out
}
