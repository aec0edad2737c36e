// Package config provides settings management for promptlens.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values applied when the settings file is absent or partial.
const (
	DefaultPreviewRunes       = 200
	DefaultSearchPreviewRunes = 300
	DefaultFence              = "```"
	DefaultTokenEncoding      = "cl100k_base"
)

// Settings holds the tunable presentation and analysis defaults. It is loaded
// once per invocation and passed down by value; nothing reads it ambiently.
type Settings struct {
	Fence              string `yaml:"fence"`
	TokenEncoding      string `yaml:"token_encoding"`
	PreviewRunes       int    `yaml:"preview_runes"`
	SearchPreviewRunes int    `yaml:"search_preview_runes"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Fence:              DefaultFence,
		TokenEncoding:      DefaultTokenEncoding,
		PreviewRunes:       DefaultPreviewRunes,
		SearchPreviewRunes: DefaultSearchPreviewRunes,
	}
}

// Dir returns the promptlens data directory. PROMPTLENS_DIR overrides the
// default of ~/.promptlens.
func Dir() string {
	if dir := os.Getenv("PROMPTLENS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".promptlens"
	}
	return filepath.Join(home, ".promptlens")
}

// SettingsPath returns the path of the optional settings file.
func SettingsPath() string {
	return filepath.Join(Dir(), "settings.yaml")
}

// Load reads the settings file over the defaults. A missing file yields the
// defaults without error; a malformed file is an error.
func Load() (Settings, error) {
	s := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", SettingsPath(), err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", SettingsPath(), err)
	}

	// Out-of-range values fall back rather than breaking display.
	if s.PreviewRunes <= 0 {
		s.PreviewRunes = DefaultPreviewRunes
	}
	if s.SearchPreviewRunes <= 0 {
		s.SearchPreviewRunes = DefaultSearchPreviewRunes
	}
	if s.Fence == "" {
		s.Fence = DefaultFence
	}
	if s.TokenEncoding == "" {
		s.TokenEncoding = DefaultTokenEncoding
	}
	return s, nil
}
