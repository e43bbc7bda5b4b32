package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danweiss/femstage/internal/core/workdir"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEMSTAGE_CONFIG", path)
	return path
}

func TestLoad(t *testing.T) {
	writeConfig(t, `
working_dir_mode = "custom"
custom_working_dir = "/srv/fem"

[templates]
must_save = "save {{document}} first"
`)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DirMode != workdir.Custom {
		t.Errorf("Expected custom mode, got %v", s.DirMode)
	}
	if s.CustomDir != "/srv/fem" {
		t.Errorf("Expected /srv/fem, got %s", s.CustomDir)
	}
	if s.MustSaveTemplate != "save {{document}} first" {
		t.Errorf("Unexpected template: %q", s.MustSaveTemplate)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FEMSTAGE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DirMode != workdir.Temporary {
		t.Errorf("Expected temporary default, got %v", s.DirMode)
	}
	if s.CustomDir != "" {
		t.Errorf("Expected empty custom dir, got %s", s.CustomDir)
	}
}

func TestLoad_UnknownMode(t *testing.T) {
	writeConfig(t, `working_dir_mode = "network"`)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DirMode != workdir.Unknown {
		t.Errorf("Expected unknown mode, got %v", s.DirMode)
	}
}

func TestLoad_Malformed(t *testing.T) {
	writeConfig(t, `working_dir_mode = [`)

	if _, err := Load(); err == nil {
		t.Error("Expected error for malformed config")
	}
}
