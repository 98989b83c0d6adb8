package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "token-guard")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte("tab = \"history\"\npaused = true\n"), 0o644))

	p, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, TabHistory, p.Tab)
	assert.True(t, p.Paused)
	assert.True(t, p.ConfirmBatch, "absent keys keep their defaults")
}

func TestLoad_UnknownTabFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab = \"users\"\n"), 0o644))

	p, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, TabTokens, p.Tab)
}

func TestLoad_InvalidTOMLReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab = [\n"), 0o644))

	p, err := Load(path)

	assert.ErrorContains(t, err, "decode prefs")
	assert.Equal(t, Default(), p)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{Tab: TabGeo, Paused: true, ConfirmBatch: false}

	require.NoError(t, Save(path, want))
	got, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "confirm_batch = false")
}
