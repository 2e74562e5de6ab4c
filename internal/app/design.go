package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Design is a declarative description of a design system, read from a
// YAML file by batch generation and the watcher. Every section is
// optional; an absent section leaves its store alone.
type Design struct {
	// Dark sets dark mode when present. Absent leaves the current mode.
	Dark        *bool                          `yaml:"dark,omitempty" json:"dark,omitempty"`
	Color       *ColorDesign                   `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty"`
	Typography  *TypographyDesign              `yaml:"typography,omitempty" json:"typography,omitempty" validate:"omitempty"`
	Spacing     *SpacingDesign                 `yaml:"spacing,omitempty" json:"spacing,omitempty" validate:"omitempty"`
	Radius      map[string]int                 `yaml:"radius,omitempty" json:"radius,omitempty" validate:"omitempty,dive,gte=0"`
	Shadows     map[string]stores.ShadowPatch  `yaml:"shadows,omitempty" json:"shadows,omitempty"`
	Layout      *LayoutDesign                  `yaml:"layout,omitempty" json:"layout,omitempty" validate:"omitempty"`
	Interaction map[scale.OpacityState]float64 `yaml:"interaction,omitempty" json:"interaction,omitempty" validate:"omitempty,dive,gte=0,lte=1"`
	Tokens      []tokens.Token                 `yaml:"tokens,omitempty" json:"tokens,omitempty" validate:"omitempty,dive"`
}

// ColorDesign selects the color inputs.
type ColorDesign struct {
	Mode        string            `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=custom catalog"`
	Base        string            `yaml:"base,omitempty" json:"base,omitempty" validate:"omitempty,csscolor"`
	Brand       string            `yaml:"brand,omitempty" json:"brand,omitempty" validate:"omitempty,brand"`
	Neutral     string            `yaml:"neutral,omitempty" json:"neutral,omitempty" validate:"omitempty,neutral"`
	AutoNeutral *bool             `yaml:"autoNeutral,omitempty" json:"autoNeutral,omitempty"`
	Semantic    map[string]string `yaml:"semantic,omitempty" json:"semantic,omitempty" validate:"omitempty,dive,keys,oneof=success warning danger info,endkeys,brand"`
	Policy      string            `yaml:"policy,omitempty" json:"policy,omitempty" validate:"omitempty,oneof=denylist contrast"`
}

// TypographyDesign selects the font and regenerates the type scale.
type TypographyDesign struct {
	Font     string                      `yaml:"font,omitempty" json:"font,omitempty" validate:"omitempty,fontfamily"`
	BaseSize float64                     `yaml:"baseSize,omitempty" json:"baseSize,omitempty" validate:"omitempty,gt=0"`
	Ratio    float64                     `yaml:"ratio,omitempty" json:"ratio,omitempty" validate:"omitempty,ratio"`
	Items    map[string]stores.TypePatch `yaml:"items,omitempty" json:"items,omitempty"`
}

// SpacingDesign regenerates the spacing scale and applies overrides.
type SpacingDesign struct {
	BaseUnit  int            `yaml:"baseUnit,omitempty" json:"baseUnit,omitempty" validate:"omitempty,oneof=4 8"`
	Overrides map[string]int `yaml:"overrides,omitempty" json:"overrides,omitempty" validate:"omitempty,dive,gte=0"`
}

// LayoutDesign edits the grids.
type LayoutDesign struct {
	Active string                      `yaml:"active,omitempty" json:"active,omitempty" validate:"omitempty,breakpoint"`
	Grids  map[string]stores.GridPatch `yaml:"grids,omitempty" json:"grids,omitempty" validate:"omitempty,dive,keys,breakpoint,endkeys"`
}

// LoadDesign reads and validates a design file.
func LoadDesign(path string) (Design, error) {
	// #nosec G304 - path comes from the user's configuration
	raw, err := os.ReadFile(path)
	if err != nil {
		return Design{}, fmt.Errorf("read design: %w", err)
	}
	return ParseDesign(raw)
}

// ParseDesign decodes and validates YAML design bytes.
func ParseDesign(raw []byte) (Design, error) {
	var d Design
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Design{}, fmt.Errorf("parse design: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Design{}, err
	}
	return d, nil
}

// Validate checks field formats.
func (d Design) Validate() error {
	return convertValidationError(validatorInstance().Struct(d))
}

// ApplyDesign applies every section through the store actions, bypassing
// the confirm gate, then projects all categories at once.
func (a *App) ApplyDesign(d Design) error {
	if err := d.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()

	var errs []error
	if d.Dark != nil {
		a.Builder.SetDark(*d.Dark)
	}
	if d.Color != nil {
		errs = append(errs, a.applyColor(*d.Color))
	}
	if d.Typography != nil {
		errs = append(errs, a.applyTypography(*d.Typography))
	}
	if d.Spacing != nil {
		if d.Spacing.BaseUnit != 0 && d.Spacing.BaseUnit != a.Spacing.BaseUnit() {
			errs = append(errs, a.Spacing.Generate(d.Spacing.BaseUnit))
		}
		for id, v := range d.Spacing.Overrides {
			errs = append(errs, a.Spacing.UpdateItem(id, v))
		}
	}
	for id, v := range d.Radius {
		errs = append(errs, a.Radius.Update(id, v))
	}
	for id, p := range d.Shadows {
		errs = append(errs, a.Shadow.UpdateLayer(id, p))
	}
	if d.Layout != nil {
		for bp, p := range d.Layout.Grids {
			errs = append(errs, a.Layout.UpdateGrid(scale.Breakpoint(bp), p))
		}
		if d.Layout.Active != "" {
			errs = append(errs, a.Layout.SetActive(scale.Breakpoint(d.Layout.Active)))
		}
	}
	for st, v := range d.Interaction {
		errs = append(errs, a.Interaction.Update(st, v))
	}

	a.syncer.RunAll()

	for _, t := range d.Tokens {
		errs = append(errs, a.upsertToken(t))
	}
	return errors.Join(errs...)
}

func (a *App) applyColor(d ColorDesign) error {
	var errs []error
	if d.AutoNeutral != nil {
		a.Color.SetAutoNeutral(*d.AutoNeutral)
	}
	switch {
	case d.Mode == string(stores.ModeCatalog) && d.Brand != "":
		errs = append(errs, a.Color.SetBrand(d.Brand))
	case d.Base != "":
		a.Color.SetBase(d.Base)
	case d.Brand != "":
		errs = append(errs, a.Color.SetBrand(d.Brand))
	}
	if d.Mode != "" {
		m, err := stores.ParseColorMode(d.Mode)
		if err == nil {
			a.Color.SetMode(m)
		}
		errs = append(errs, err)
	}
	if d.Neutral != "" {
		errs = append(errs, a.Color.SetNeutral(d.Neutral))
	}
	for role, hue := range d.Semantic {
		errs = append(errs, a.Color.SetSemantic(role, hue))
	}
	if d.Policy != "" {
		p, err := scale.ParseForegroundPolicy(d.Policy)
		if err == nil {
			a.Color.SetPolicy(p)
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) applyTypography(d TypographyDesign) error {
	var errs []error
	if d.Font != "" {
		errs = append(errs, a.Typography.SelectFont(d.Font))
	}
	if d.BaseSize != 0 || d.Ratio != 0 {
		st := a.Typography.Snapshot()
		base, ratio := st.BaseSize, st.Ratio
		if d.BaseSize != 0 {
			base = d.BaseSize
		}
		if d.Ratio != 0 {
			ratio = d.Ratio
		}
		errs = append(errs, a.Typography.Generate(base, ratio))
	}
	for id, p := range d.Items {
		errs = append(errs, a.Typography.UpdateItem(id, p))
	}
	return errors.Join(errs...)
}

func (a *App) upsertToken(t tokens.Token) error {
	if _, ok := a.Tokens.Get(t.ID); ok && t.ID != "" {
		p := tokens.Patch{Name: &t.Name, Value: &t.Value, Description: &t.Description}
		if t.Type != "" {
			p.Type = &t.Type
		}
		_, err := a.Tokens.Update(t.ID, p)
		return err
	}
	_, err := a.Tokens.Add(t)
	return err
}
