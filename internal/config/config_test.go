package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Settings
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, Defaults(), onDisk)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"effect": "silk", "seed": 42}`), 0644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "silk", s.Effect)
	assert.Equal(t, uint64(42), s.Seed)
	assert.True(t, s.Bloom)
	assert.Equal(t, 600, s.Particles)
}

func TestLoadWarnsAndClamps(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"particles": -5,
		"max_pixel_ratio": 9,
		"visibility_threshold": 2,
		"constrained": "sometimes",
		"overlay_alpha": 0.5
	}`), 0644))

	s, err := Load(path, zap.New(core))
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.Particles, s.Particles)
	assert.Equal(t, d.MaxPixelRatio, s.MaxPixelRatio)
	assert.Equal(t, d.VisibilityThreshold, s.VisibilityThreshold)
	assert.Equal(t, ConstrainedAuto, s.Constrained)

	assert.Equal(t, 1, logs.FilterMessage("unrecognised setting key").Len())
	assert.Equal(t, 4, logs.FilterMessage("invalid setting, using default").Len())
}

func TestLoadInvalidJSONFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *s)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"effect": "lens", "bloom": true}`), 0644))
	t.Setenv("BACKDROP_EFFECT", "silk")
	t.Setenv("BACKDROP_BLOOM", "false")
	t.Setenv("BACKDROP_PARTICLES", "1200")

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "silk", s.Effect)
	assert.False(t, s.Bloom)
	assert.Equal(t, 1200, s.Particles)
}

func TestEnvParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	t.Setenv("BACKDROP_PARTICLES", "many")

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := NewWatcher(path, 100*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	w.Start(ctx)

	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte(`{"seed": `+string(rune('1'+i))+`}`), 0644))
	}
	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-w.Changes():
		t.Fatal("burst reported twice")
	case <-time.After(400 * time.Millisecond):
	}
}
