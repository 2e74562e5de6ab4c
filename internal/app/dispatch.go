package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/schedule"
	"github.com/yacobolo/tokenkit/internal/stores"
)

// Action is one input event.
type Action struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
	// Force skips the confirm gate of destructive actions.
	Force bool `json:"force,omitempty"`
}

// Result reports what Dispatch did.
type Result struct {
	// Applied is true when a store changed.
	Applied bool `json:"applied"`
	// Armed is true when a destructive action is waiting for a repeat.
	Armed bool `json:"armed,omitempty"`
}

var (
	applied = Result{Applied: true}
	noop    = Result{}
)

// Dispatch applies one action. See the package documentation for keys.
func (a *App) Dispatch(act Action) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()

	res, err := a.dispatchLocked(act)
	if err != nil {
		a.log.WithFields(map[string]any{"key": act.Key, "value": act.Value}).Warn("action rejected: " + err.Error())
		return noop, err
	}
	return res, nil
}

func (a *App) dispatchLocked(act Action) (Result, error) {
	store, rest, _ := strings.Cut(act.Key, ".")
	if rest == "reset" {
		return applied, a.resetLocked(store)
	}

	switch store {
	case "color":
		return a.dispatchColor(rest, act.Value)
	case "builder":
		return a.dispatchBuilder(rest, act.Value)
	case "typography":
		return a.dispatchTypography(rest, act)
	case "spacing":
		return a.dispatchSpacing(rest, act)
	case "radius":
		return a.dispatchRadius(rest, act.Value)
	case "shadow":
		return a.dispatchShadow(rest, act.Value)
	case "layout":
		return a.dispatchLayout(rest, act.Value)
	case "interaction":
		v, err := parseFloat(act.Value)
		if err != nil {
			return noop, err
		}
		return applied, a.Interaction.Update(scale.OpacityState(rest), v)
	}
	return noop, unknownAction(act.Key)
}

// gate runs commit only once the same key and value were requested twice
// within the confirm window.
func (a *App) gate(act Action, commit func() error) (Result, error) {
	if !act.Force && a.confirm.Request(act.Key+"="+act.Value) == schedule.Armed {
		return Result{Armed: true}, nil
	}
	a.confirm.Reset()
	if err := commit(); err != nil {
		return noop, err
	}
	return applied, nil
}

func (a *App) dispatchColor(key, value string) (Result, error) {
	if role, ok := strings.CutPrefix(key, "semantic."); ok {
		return applied, a.Color.SetSemantic(role, value)
	}

	switch key {
	case "base":
		a.Color.SetBase(value)
		return applied, nil
	case "brand":
		return applied, a.Color.SetBrand(value)
	case "neutral":
		return applied, a.Color.SetNeutral(value)
	case "autoNeutral":
		on, err := parseBool(value)
		if err != nil {
			return noop, err
		}
		a.Color.SetAutoNeutral(on)
		return applied, nil
	case "mode":
		m, err := stores.ParseColorMode(value)
		if err != nil {
			return noop, invalid(err)
		}
		a.Color.SetMode(m)
		return applied, nil
	case "policy":
		p, err := scale.ParseForegroundPolicy(value)
		if err != nil {
			return noop, invalid(err)
		}
		a.Color.SetPolicy(p)
		return applied, nil
	}
	return noop, unknownAction("color." + key)
}

func (a *App) dispatchBuilder(key, value string) (Result, error) {
	switch key {
	case "dark":
		on, err := parseBool(value)
		if err != nil {
			return noop, err
		}
		if on == a.Builder.Dark() {
			return noop, nil
		}
		a.Builder.SetDark(on)
		return applied, nil
	case "toggleDark":
		a.Builder.ToggleDark()
		return applied, nil
	case "clear":
		a.Builder.Clear()
		return applied, nil
	}
	return noop, unknownAction("builder." + key)
}

func (a *App) dispatchTypography(key string, act Action) (Result, error) {
	value := act.Value
	switch key {
	case "font":
		return applied, a.Typography.SelectFont(value)
	case "select":
		return applied, a.Typography.SelectItem(value)
	case "resetItem":
		return applied, a.Typography.ResetItem(value)
	case "reorder":
		return applied, a.Typography.Reorder(splitList(value))
	case "generate":
		base, ratio, err := parseGenerate(value)
		if err != nil {
			return noop, err
		}
		if _, err := scale.LookupRatio(ratio); err != nil {
			return noop, invalid(err)
		}
		return a.gate(act, func() error { return a.Typography.Generate(base, ratio) })
	}

	id, field, ok := strings.Cut(key, ".")
	if !ok {
		return noop, unknownAction("typography." + key)
	}
	patch, err := typePatch(field, value)
	if err != nil {
		return noop, err
	}
	return applied, a.Typography.UpdateItem(id, patch)
}

func (a *App) dispatchSpacing(key string, act Action) (Result, error) {
	switch key {
	case "baseUnit":
		unit, err := parseInt(act.Value)
		if err != nil {
			return noop, err
		}
		if unit == a.Spacing.BaseUnit() {
			return noop, nil
		}
		if !scale.SupportedBaseUnit(unit) {
			return noop, invalid(fmt.Errorf("%w: %d", scale.ErrUnsupportedBaseUnit, unit))
		}
		return a.gate(act, func() error { return a.Spacing.Generate(unit) })
	case "select":
		return applied, a.Spacing.SelectItem(act.Value)
	}

	v, err := parseInt(act.Value)
	if err != nil {
		return noop, err
	}
	return applied, a.Spacing.UpdateItem(key, v)
}

func (a *App) dispatchRadius(key, value string) (Result, error) {
	if key == "select" {
		return applied, a.Radius.Select(value)
	}
	v, err := parseInt(value)
	if err != nil {
		return noop, err
	}
	return applied, a.Radius.Update(key, v)
}

func (a *App) dispatchShadow(key, value string) (Result, error) {
	if key == "select" {
		return applied, a.Shadow.Select(value)
	}

	id, field, ok := strings.Cut(key, ".")
	if !ok {
		return noop, unknownAction("shadow." + key)
	}
	var p stores.ShadowPatch
	if field == "color" {
		p.Color = &value
	} else {
		v, err := parseFloat(value)
		if err != nil {
			return noop, err
		}
		switch field {
		case "x":
			p.X = &v
		case "y":
			p.Y = &v
		case "blur":
			p.Blur = &v
		case "spread":
			p.Spread = &v
		case "opacity":
			p.Opacity = &v
		default:
			return noop, unknownAction("shadow." + key)
		}
	}
	return applied, a.Shadow.UpdateLayer(id, p)
}

func (a *App) dispatchLayout(key, value string) (Result, error) {
	switch key {
	case "active":
		return applied, a.Layout.SetActive(scale.Breakpoint(value))
	case "overlay":
		a.Layout.ToggleOverlay()
		return applied, nil
	}

	bp, field, ok := strings.Cut(key, ".")
	if !ok {
		return noop, unknownAction("layout." + key)
	}
	v, err := parseInt(value)
	if err != nil {
		return noop, err
	}
	var p stores.GridPatch
	switch field {
	case "columns":
		p.Columns = &v
	case "gutter":
		p.Gutter = &v
	case "margin":
		p.Margin = &v
	default:
		return noop, unknownAction("layout." + key)
	}
	return applied, a.Layout.UpdateGrid(scale.Breakpoint(bp), p)
}

func typePatch(field, value string) (stores.TypePatch, error) {
	var p stores.TypePatch
	switch field {
	case "name":
		p.Name = &value
	case "usage":
		p.Usage = &value
	case "weight":
		v, err := parseInt(value)
		if err != nil {
			return p, err
		}
		p.Weight = &v
	case "size", "lineHeight", "letterSpacing":
		v, err := parseFloat(value)
		if err != nil {
			return p, err
		}
		switch field {
		case "size":
			p.Size = &v
		case "lineHeight":
			p.LineHeight = &v
		default:
			p.LetterSpacing = &v
		}
	default:
		return p, unknownAction("typography field " + field)
	}
	return p, nil
}

func parseGenerate(value string) (float64, float64, error) {
	baseStr, ratioStr, ok := strings.Cut(value, ",")
	if !ok {
		return 0, 0, invalid(fmt.Errorf("want \"{base},{ratio}\", got %q", value))
	}
	base, err := parseFloat(baseStr)
	if err != nil {
		return 0, 0, err
	}
	ratio, err := parseFloat(ratioStr)
	if err != nil {
		return 0, 0, err
	}
	return base, ratio, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid(err)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, invalid(err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidValue, s)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, invalid(err)
	}
	return v, nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidValue, err)
}

func unknownAction(key string) error {
	return fmt.Errorf("%w: %q", ErrUnknownAction, key)
}
