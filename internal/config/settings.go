// Package config loads and persists the CLI's settings file. The
// scraping core never reads settings itself; the CLI loads them and
// passes credentials into the login operation.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings represents the configuration persisted to disk.
type Settings struct {
	Username string `json:"username"`
	Password string `json:"password"`
	BaseURL  string `json:"baseUrl,omitempty"` // override for testing against a mirror
	Limit    int    `json:"limit"`             // default listing length
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{Limit: 20}
}

// Path returns the settings file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "godafilms", "settings.json"), nil
}

// Load reads the settings file, returning defaults when it is absent.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}

	settings := Default()
	if err := json.Unmarshal(data, &settings); err != nil {
		return Default(), err
	}
	if settings.Limit <= 0 {
		settings.Limit = 20
	}
	return settings, nil
}

// Save writes the settings file, creating the directory as needed.
func Save(settings Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
