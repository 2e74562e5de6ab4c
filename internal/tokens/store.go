package tokens

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store is an ordered token collection with unique ids.
// It is safe for concurrent use; one mutation notifies listeners once.
type Store struct {
	mu        sync.RWMutex
	tokens    []Token
	listeners []func()
}

// NewStore returns a store holding the default tokens.
func NewStore() *Store {
	return &Store{tokens: Defaults()}
}

// NewEmptyStore returns a store with no tokens.
func NewEmptyStore() *Store {
	return &Store{}
}

// OnChange registers fn to run after every successful mutation.
// Listeners run outside the store lock.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Add appends a token. An empty id is replaced with a random UUID.
func (s *Store) Add(t Token) (Token, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if !ValidID(t.ID) {
		return Token{}, fmt.Errorf("add %q: %w", t.ID, ErrInvalidID)
	}
	if !t.Type.Valid() {
		return Token{}, fmt.Errorf("add %q: unknown token type %q", t.ID, t.Type)
	}

	s.mu.Lock()
	if s.indexLocked(t.ID) >= 0 {
		s.mu.Unlock()
		return Token{}, fmt.Errorf("add %q: %w", t.ID, ErrDuplicateID)
	}
	s.tokens = append(s.tokens, t)
	s.mu.Unlock()

	s.notify()
	return t, nil
}

// Update applies a partial update to the token with the given id.
// Values are stored verbatim; no CSS validation happens here.
func (s *Store) Update(id string, p Patch) (Token, error) {
	if p.Type != nil && !p.Type.Valid() {
		return Token{}, fmt.Errorf("update %q: unknown token type %q", id, *p.Type)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Token{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	s.tokens[i] = p.apply(s.tokens[i])
	updated := s.tokens[i]
	s.mu.Unlock()

	s.notify()
	return updated, nil
}

// Remove deletes the token with the given id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
	s.mu.Unlock()

	s.notify()
	return true
}

// Get returns the token with the given id.
func (s *Store) Get(id string) (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.tokens[i], true
	}
	return Token{}, false
}

// FindByName returns the first token of type t with the given name.
func (s *Store) FindByName(t Type, name string) (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tok := range s.tokens {
		if tok.Type == t && tok.Name == name {
			return tok, true
		}
	}
	return Token{}, false
}

// ByType returns the tokens of one type in insertion order.
func (s *Store) ByType(t Type) []Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Token
	for _, tok := range s.tokens {
		if tok.Type == t {
			out = append(out, tok)
		}
	}
	return out
}

// All returns a copy of every token in insertion order.
func (s *Store) All() []Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Len returns the number of tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// ReplaceCategory removes every token of type t and appends replacement.
// Replacement tokens are forced to type t. The operation is rejected as a
// whole, with no change, if the replacement repeats an id or collides with
// a token of another type.
func (s *Store) ReplaceCategory(t Type, replacement []Token) error {
	if !t.Valid() {
		return fmt.Errorf("replace: unknown token type %q", t)
	}

	seen := make(map[string]bool, len(replacement))
	next := make([]Token, 0, len(replacement))
	for _, tok := range replacement {
		if tok.ID == "" {
			tok.ID = uuid.NewString()
		}
		if !ValidID(tok.ID) {
			return fmt.Errorf("replace %s: %q: %w", t, tok.ID, ErrInvalidID)
		}
		if seen[tok.ID] {
			return fmt.Errorf("replace %s: %q: %w", t, tok.ID, ErrDuplicateID)
		}
		seen[tok.ID] = true
		tok.Type = t
		next = append(next, tok)
	}

	s.mu.Lock()
	kept := make([]Token, 0, len(s.tokens)+len(next))
	for _, tok := range s.tokens {
		if tok.Type == t {
			continue
		}
		if seen[tok.ID] {
			s.mu.Unlock()
			return fmt.Errorf("replace %s: %q used by a %s token: %w", t, tok.ID, tok.Type, ErrDuplicateID)
		}
		kept = append(kept, tok)
	}
	s.tokens = append(kept, next...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Reset restores the default tokens.
func (s *Store) Reset() {
	s.mu.Lock()
	s.tokens = Defaults()
	s.mu.Unlock()

	s.notify()
}

func (s *Store) indexLocked(id string) int {
	for i, tok := range s.tokens {
		if tok.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
