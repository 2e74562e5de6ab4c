// Package app is the application context: it owns every domain store, the
// Token Store, the projection Syncer and the composed theme, and it
// serializes all handlers behind one lock.
//
// Input events arrive through Dispatch as (key, value) pairs:
//
//	color.base                  hex or named color; switches to custom mode
//	color.brand                 catalog brand hue; switches to catalog mode
//	color.neutral               neutral family
//	color.autoNeutral           true|false
//	color.mode                  custom|catalog
//	color.policy                denylist|contrast
//	color.semantic.{role}       brand hue for success|warning|danger|info
//	builder.dark                true|false
//	builder.toggleDark          value ignored
//	typography.font             font family name
//	typography.select           role id, empty clears
//	typography.generate         "{base},{ratio}", confirm-gated
//	typography.reorder          comma-separated role ids
//	typography.resetItem        role id
//	typography.{id}.{field}     name|size|lineHeight|letterSpacing|weight|usage
//	spacing.baseUnit            4|8, confirm-gated, equal value is a no-op
//	spacing.select              step id
//	spacing.{id}                px value
//	radius.select               radius id
//	radius.{id}                 px value
//	shadow.select               layer id
//	shadow.{id}.{field}         x|y|blur|spread|color|opacity
//	layout.active               mobile|tablet|desktop
//	layout.overlay              value ignored, toggles
//	layout.{bp}.{field}         columns|gutter|margin
//	interaction.{state}         disabled|hover|pressed|overlay opacity 0..1
//	{store}.reset               value ignored
package app

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/yacobolo/tokenkit/internal/export"
	"github.com/yacobolo/tokenkit/internal/logging"
	"github.com/yacobolo/tokenkit/internal/persist"
	"github.com/yacobolo/tokenkit/internal/projection"
	"github.com/yacobolo/tokenkit/internal/scale"
	"github.com/yacobolo/tokenkit/internal/schedule"
	"github.com/yacobolo/tokenkit/internal/stores"
	"github.com/yacobolo/tokenkit/internal/theme"
	"github.com/yacobolo/tokenkit/internal/tokens"
)

// Options configures New. Zero values select an in-memory adapter, the
// wall clock and the default delays.
type Options struct {
	// Adapter persists the typography, shadow, layout and interaction
	// stores. The App closes it.
	Adapter       persist.Adapter
	Scheduler     schedule.Scheduler
	SyncDelay     time.Duration
	ConfirmWindow time.Duration
	Policy        scale.ForegroundPolicy
	Log           *logging.Logger
	// OnProjection is called, under the lock, after each applied projection.
	OnProjection func(c projection.Category, count int)
}

// App is the application context.
type App struct {
	mu  sync.Mutex
	log *logging.Logger

	adapter persist.Adapter

	Tokens      *tokens.Store
	Color       *stores.ColorStore
	Builder     *stores.BuilderStore
	Typography  *stores.TypographyStore
	Spacing     *stores.SpacingStore
	Radius      *stores.RadiusStore
	Shadow      *stores.ShadowStore
	Layout      *stores.LayoutStore
	Interaction *stores.InteractionStore

	syncer  *projection.Syncer
	confirm *schedule.Confirm

	dirty     bool
	themeMap  theme.Map
	subs      map[int]func(theme.Map)
	nextSubID int
	closed    bool
}

// New wires the stores, the Syncer and the confirm gate.
func New(opts Options) (*App, error) {
	if opts.Adapter == nil {
		opts.Adapter = persist.NewMemory()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.RealScheduler{}
	}
	if opts.ConfirmWindow <= 0 {
		opts.ConfirmWindow = schedule.DefaultConfirmWindow
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Policy != "" {
		if _, err := scale.ParseForegroundPolicy(string(opts.Policy)); err != nil {
			return nil, err
		}
	}

	log := opts.Log
	a := &App{
		log:         log,
		adapter:     opts.Adapter,
		Tokens:      tokens.NewStore(),
		Color:       stores.NewColorStore(),
		Builder:     stores.NewBuilderStore(),
		Typography:  stores.NewTypographyStore(opts.Adapter, log.With("store", "typography")),
		Spacing:     stores.NewSpacingStore(),
		Radius:      stores.NewRadiusStore(),
		Shadow:      stores.NewShadowStore(opts.Adapter, log.With("store", "shadow")),
		Layout:      stores.NewLayoutStore(opts.Adapter, log.With("store", "layout")),
		Interaction: stores.NewInteractionStore(opts.Adapter, log.With("store", "interaction")),
		confirm:     schedule.NewConfirm(opts.Scheduler, opts.ConfirmWindow),
		dirty:       true,
		subs:        make(map[int]func(theme.Map)),
	}
	if opts.Policy != "" {
		a.Color.SetPolicy(opts.Policy)
	}

	onProjection := opts.OnProjection
	a.syncer = projection.NewSyncer(a.Tokens, projection.Sources{
		Color: func() projection.ColorSnapshot {
			return projection.ColorSnapshot{Color: a.Color.Snapshot(), Dark: a.Builder.Dark()}
		},
		Typography: a.Typography.Snapshot,
		Spacing:    a.Spacing.Snapshot,
	}, projection.Options{
		Scheduler: opts.Scheduler,
		Delay:     opts.SyncDelay,
		Locker:    &a.mu,
		Log:       log.With("component", "syncer"),
		Observer: func(c projection.Category, count int) {
			if onProjection != nil {
				onProjection(c, count)
			}
			a.publishLocked()
		},
	})

	markDirty := func() { a.dirty = true }
	a.Tokens.OnChange(markDirty)
	a.Radius.OnChange(markDirty)
	a.Shadow.OnChange(markDirty)
	a.Layout.OnChange(markDirty)
	a.Interaction.OnChange(markDirty)
	a.Color.OnChange(func() { a.syncer.Notify(projection.CategoryColor) })
	a.Builder.OnChange(func() { a.syncer.Notify(projection.CategoryColor) })
	a.Typography.OnChange(func() { a.syncer.Notify(projection.CategoryTypography) })
	a.Spacing.OnChange(func() { a.syncer.Notify(projection.CategorySpacing) })

	// The first session starts from the projected scales rather than the
	// placeholder defaults.
	a.syncer.RunAll()
	return a, nil
}

// Theme returns the composed variable map, rebuilding it if any input
// changed since the last call.
func (a *App) Theme() theme.Map {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.themeLocked()
}

func (a *App) themeLocked() theme.Map {
	if a.dirty || a.themeMap == nil {
		a.themeMap = theme.Compose(theme.Inputs{
			Tokens:  a.Tokens.All(),
			Radius:  a.Radius.Snapshot().Scale,
			Shadows: a.Shadow.Snapshot().Layers,
			Grid:    a.Layout.Snapshot().ActiveGrid(),
			Opacity: a.Interaction.Snapshot(),
		})
		a.dirty = false
	}
	return a.themeMap
}

// Subscribe registers fn to receive the theme after each change. fn runs
// under the application lock and must not call back into the App.
func (a *App) Subscribe(fn func(theme.Map)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextSubID
	a.nextSubID++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

// publishLocked pushes a rebuilt theme to subscribers if anything changed.
func (a *App) publishLocked() {
	if !a.dirty || len(a.subs) == 0 {
		return
	}
	m := a.themeLocked()
	for _, fn := range a.subs {
		fn(m)
	}
}

// TokenList returns the tokens of type t, or all tokens when t is empty.
func (a *App) TokenList(t tokens.Type) []tokens.Token {
	if t == "" {
		return a.Tokens.All()
	}
	return a.Tokens.ByType(t)
}

// Export writes the Token Store in format.
func (a *App) Export(w io.Writer, format export.Format, selector string) error {
	return export.Write(w, a.Tokens.All(), format, selector)
}

// AddToken adds a manual token.
func (a *App) AddToken(t tokens.Token) (tokens.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()
	return a.Tokens.Add(t)
}

// UpdateToken edits a token. Values are stored verbatim.
func (a *App) UpdateToken(id string, p tokens.Patch) (tokens.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()
	return a.Tokens.Update(id, p)
}

// DeleteToken removes a token and clears a selection pointing at it.
func (a *App) DeleteToken(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()

	if !a.Tokens.Remove(id) {
		return false
	}
	if sel, ok := a.Builder.Selection(); ok && sel.Kind == stores.SelectToken && sel.ID == id {
		a.Builder.Clear()
	}
	return true
}

// Select resolves a swatch click to a token by the "{Category} {index+1}"
// naming convention. A miss is logged and leaves the selection unchanged.
func (a *App) Select(category string, index int) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := scale.StepName(category, index)
	for _, t := range a.Tokens.All() {
		if t.Name == name {
			a.Builder.Select(t.ID, stores.SelectToken)
			return t.ID, true
		}
	}
	a.log.WithFields(map[string]any{"category": category, "index": index, "name": name}).
		Warn("no token matches selection")
	return "", false
}

// SelectToken selects a token by id.
func (a *App) SelectToken(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.Tokens.Get(id); !ok {
		return fmt.Errorf("token %q: %w", id, tokens.ErrNotFound)
	}
	a.Builder.Select(id, stores.SelectToken)
	return nil
}

// Selection returns the current editor selection.
func (a *App) Selection() (stores.Selection, bool) {
	return a.Builder.Selection()
}

// Reset restores one store, or every store for "all".
func (a *App) Reset(store string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.publishLocked()
	return a.resetLocked(store)
}

func (a *App) resetLocked(store string) error {
	switch store {
	case "color":
		a.Color.Reset()
	case "builder":
		a.Builder.Clear()
		a.Builder.SetDark(false)
	case "typography":
		a.Typography.Reset()
	case "spacing":
		a.Spacing.Reset()
	case "radius":
		a.Radius.Reset()
	case "shadow":
		a.Shadow.Reset()
	case "layout":
		a.Layout.Reset()
	case "interaction":
		a.Interaction.Reset()
	case "tokens":
		a.Tokens.Reset()
	case "all":
		for _, s := range StoreNames() {
			if s != "all" {
				_ = a.resetLocked(s)
			}
		}
	default:
		return fmt.Errorf("reset %q: %w", store, ErrUnknownStore)
	}
	a.confirm.Reset()
	return nil
}

// StoreNames lists the names accepted by Reset.
func StoreNames() []string {
	return []string{"color", "builder", "typography", "spacing", "radius", "shadow", "layout", "interaction", "tokens", "all"}
}

// Flush runs pending projections now and publishes the result.
func (a *App) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.syncer.Flush()
	a.publishLocked()
}

// Close stops the Syncer and closes the persistence adapter.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.syncer.Stop()
	a.confirm.Reset()
	return persist.Close(a.adapter)
}

var (
	// ErrUnknownStore is returned by Reset for an unknown store name.
	ErrUnknownStore = errors.New("unknown store")
	// ErrUnknownAction is returned by Dispatch for an unknown key.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidValue is returned by Dispatch for a value it cannot parse.
	ErrInvalidValue = errors.New("invalid value")
)
