package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"category": "color", "count": 22}).Debug("projected")

	entry := decode(t, buf)
	assert.Equal(t, "projected", entry["message"])
	assert.Equal(t, "color", entry["category"])
	assert.Equal(t, float64(22), entry["count"])
	assert.Equal(t, "debug", entry["level"])
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "warn", Writer: buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Debug("hidden")
	assert.Empty(t, strings.TrimSpace(buf.String()))

	log.With("key", "spacing.baseUnit").Warn("shown")
	entry := decode(t, buf)
	assert.Equal(t, "spacing.baseUnit", entry["key"])
}

func TestLogger_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf})
	require.NoError(t, err)

	log.Error(errors.New("boom"), "reload failed")
	entry := decode(t, buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestLogger_NilSafe(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("x")
		log.Debug("x")
		log.Warn("x")
		log.Error(nil, "x")
		assert.Nil(t, log.WithFields(map[string]any{"a": 1}))
		assert.Nil(t, log.With("a", "b"))
	})
	assert.NotPanics(t, func() { Nop().Info("x") })
}
