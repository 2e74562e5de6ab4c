package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleState struct {
	Layers []string `yaml:"layers"`
	Active string   `yaml:"active"`
}

func adapters(t *testing.T) map[string]Adapter {
	t.Helper()

	file, err := NewFile(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	db, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Adapter{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleState{Layers: []string{"layer-1", "layer-2"}, Active: "layer-2"}
			require.NoError(t, Save(a, KeyShadow, Version, want))

			got, status := Load[sampleState](a, KeyShadow, Version)
			assert.Equal(t, Loaded, status)
			assert.Equal(t, want, got)

			// Overwrite replaces the previous value.
			want.Active = "layer-1"
			require.NoError(t, Save(a, KeyShadow, Version, want))
			got, _ = Load[sampleState](a, KeyShadow, Version)
			assert.Equal(t, "layer-1", got.Active)
		})
	}
}

func TestLoad_FallbackStatuses(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			_, status := Load[sampleState](a, KeyLayout, Version)
			assert.Equal(t, Missing, status)

			require.NoError(t, Save(a, KeyLayout, 0, sampleState{Active: "old"}))
			got, status := Load[sampleState](a, KeyLayout, Version)
			assert.Equal(t, VersionMismatch, status)
			assert.Equal(t, sampleState{}, got)

			require.NoError(t, a.Set(KeyInteraction, []byte("state: [unclosed")))
			_, status = Load[sampleState](a, KeyInteraction, Version)
			assert.Equal(t, Corrupt, status)
		})
	}
}

func TestLoad_NilAdapter(t *testing.T) {
	_, status := Load[sampleState](nil, KeyTypography, Version)
	assert.Equal(t, Missing, status)
	assert.NoError(t, Save[sampleState](nil, KeyTypography, Version, sampleState{}))
}

func TestFile_RejectsEscapingKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "a/b", `a\b`} {
		assert.Error(t, f.Set(key, []byte("x")), key)
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, Save(first, KeyTypography, Version, sampleState{Active: "body-md"}))

	second, err := NewFile(dir)
	require.NoError(t, err)
	got, status := Load[sampleState](second, KeyTypography, Version)
	assert.Equal(t, Loaded, status)
	assert.Equal(t, "body-md", got.Active)
}

func TestSQLite_Closed(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, Close(db))
	require.NoError(t, db.Close())

	_, _, err = db.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, db.Set("k", nil), ErrClosed)

	_, status := Load[sampleState](db, "k", Version)
	assert.Equal(t, Unavailable, status)
}

func TestOpen(t *testing.T) {
	a, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, a)

	a, err = Open("file", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &File{}, a)

	_, err = Open("redis", "")
	assert.Error(t, err)
}
