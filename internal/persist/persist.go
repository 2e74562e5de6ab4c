// Package persist stores versioned domain-store state behind a simple
// get/set-by-key adapter.
package persist

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrClosed is returned by adapters used after Close.
var ErrClosed = errors.New("persistence adapter closed")

// Adapter is a byte-oriented key/value store.
type Adapter interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}

// Storage names of the persisted domain stores.
const (
	KeyTypography  = "typography-storage"
	KeyShadow      = "shadow-storage"
	KeyLayout      = "layout-storage"
	KeyInteraction = "interaction-storage"
)

// Version is the envelope version written by this build.
const Version = 1

// Status describes the outcome of Load.
type Status int

const (
	// Loaded means the stored state was decoded.
	Loaded Status = iota
	// Missing means nothing was stored under the key.
	Missing
	// VersionMismatch means the stored envelope has another version.
	VersionMismatch
	// Corrupt means the stored bytes could not be decoded.
	Corrupt
	// Unavailable means the adapter returned an error.
	Unavailable
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case VersionMismatch:
		return "version mismatch"
	case Corrupt:
		return "corrupt"
	case Unavailable:
		return "unavailable"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

type envelope[T any] struct {
	State   T   `yaml:"state"`
	Version int `yaml:"version"`
}

// Load decodes the state stored under key. Any status other than Loaded
// means the caller should keep its compiled-in defaults.
func Load[T any](a Adapter, key string, version int) (T, Status) {
	var zero T
	if a == nil {
		return zero, Missing
	}

	raw, ok, err := a.Get(key)
	if err != nil {
		return zero, Unavailable
	}
	if !ok || len(raw) == 0 {
		return zero, Missing
	}

	var env envelope[T]
	if err := yaml.Unmarshal(raw, &env); err != nil {
		return zero, Corrupt
	}
	if env.Version != version {
		return zero, VersionMismatch
	}
	return env.State, Loaded
}

// Save encodes state with version and stores it under key.
func Save[T any](a Adapter, key string, version int, state T) error {
	if a == nil {
		return nil
	}

	raw, err := yaml.Marshal(envelope[T]{State: state, Version: version})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.Set(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close closes a if it holds resources.
func Close(a Adapter) error {
	if c, ok := a.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open builds an adapter by driver name: "memory", "file" (path is a
// directory) or "sqlite" (path is a database file).
func Open(driver, path string) (Adapter, error) {
	switch driver {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(path)
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
