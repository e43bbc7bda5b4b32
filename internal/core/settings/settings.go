// Package settings reads the femstage preference store. Resolution
// treats it as read-only; writes happen through the user's editor.
package settings

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/danweiss/femstage/internal/core/workdir"
)

// Settings holds the effective preferences.
type Settings struct {
	DirMode   workdir.Mode // directory placement policy
	CustomDir string       // base path for custom mode

	// Notification template overrides, mustache syntax. Empty means the
	// built-in template.
	MustSaveTemplate   string
	MissingDirTemplate string
}

type tomlConfig struct {
	WorkingDirMode   string `toml:"working_dir_mode"`
	CustomWorkingDir string `toml:"custom_working_dir"`
	Templates        struct {
		MustSave   string `toml:"must_save"`
		MissingDir string `toml:"missing_dir"`
	} `toml:"templates"`
}

// Path returns the config file location: $FEMSTAGE_CONFIG when set,
// otherwise ~/.config/femstage/config.toml.
func Path() string {
	if p := os.Getenv("FEMSTAGE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "femstage", "config.toml")
}

// Load reads the preference file. A missing file yields defaults
// (temporary staging, no custom dir); a malformed file is an error so a
// broken preference store never silently degrades to defaults.
func Load() (*Settings, error) {
	s := &Settings{DirMode: workdir.Temporary}

	path := Path()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		return s, nil
	}

	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return nil, err
	}
	if tc.WorkingDirMode != "" {
		s.DirMode = workdir.ParseMode(tc.WorkingDirMode)
	}
	s.CustomDir = tc.CustomWorkingDir
	s.MustSaveTemplate = tc.Templates.MustSave
	s.MissingDirTemplate = tc.Templates.MissingDir
	return s, nil
}
