package stores

import (
	"fmt"
	"sync"
)

// SelectionKind is what a selection points at.
type SelectionKind string

// Selection kinds.
const (
	SelectToken      SelectionKind = "token"
	SelectComponent  SelectionKind = "component"
	SelectTypography SelectionKind = "typography"
)

// ParseSelectionKind validates a selection kind. Empty means token.
func ParseSelectionKind(s string) (SelectionKind, error) {
	switch k := SelectionKind(s); k {
	case "":
		return SelectToken, nil
	case SelectToken, SelectComponent, SelectTypography:
		return k, nil
	}
	return "", fmt.Errorf("unknown selection kind %q", s)
}

// Selection identifies the item shown in the editing panel.
type Selection struct {
	ID   string        `json:"id"`
	Kind SelectionKind `json:"kind"`
}

// BuilderStore holds the editor selection and the dark-mode flag.
// OnChange listeners see dark-mode changes only; selection changes go to
// OnSelect listeners and never reach the projection pipeline.
type BuilderStore struct {
	notifier
	selected notifier

	mu        sync.RWMutex
	selection *Selection
	dark      bool
}

// NewBuilderStore returns a store with nothing selected in light mode.
func NewBuilderStore() *BuilderStore {
	return &BuilderStore{}
}

// Select sets the current selection.
func (s *BuilderStore) Select(id string, kind SelectionKind) {
	s.mu.Lock()
	s.selection = &Selection{ID: id, Kind: kind}
	s.mu.Unlock()
	s.selected.notify()
}

// Clear removes the selection.
func (s *BuilderStore) Clear() {
	s.mu.Lock()
	s.selection = nil
	s.mu.Unlock()
	s.selected.notify()
}

// OnSelect registers fn to run after the selection changes.
func (s *BuilderStore) OnSelect(fn func()) {
	s.selected.OnChange(fn)
}

// Selection returns the current selection, if any.
func (s *BuilderStore) Selection() (Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// Dark reports whether dark mode is on.
func (s *BuilderStore) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// SetDark sets dark mode.
func (s *BuilderStore) SetDark(on bool) {
	s.mu.Lock()
	changed := s.dark != on
	s.dark = on
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ToggleDark flips dark mode.
func (s *BuilderStore) ToggleDark() {
	s.mu.Lock()
	s.dark = !s.dark
	s.mu.Unlock()
	s.notify()
}
