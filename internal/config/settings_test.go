package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	assert.Equal(t, 20, settings.Limit)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	want := Settings{
		Username: "user@example.com",
		Password: "secret",
		BaseURL:  "http://localhost:9999",
		Limit:    50,
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Credentials live in the file, so it must not be world-readable.
	path, err := Path()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRepairsNonPositiveLimit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "godafilms", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"u","password":"p","limit":0}`), 0o600))

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, settings.Limit)
	assert.Equal(t, "u", settings.Username)
}
