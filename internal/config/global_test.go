package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/alb/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "alb", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

// writeGlobalConfig points XDG_CONFIG_HOME at a temp dir holding data.
func writeGlobalConfig(t *testing.T, data string) {
	t.Helper()
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(LibraryEnvVar, "")
	if data == "" {
		return
	}
	if err := os.MkdirAll(filepath.Join(dir, GlobalConfigDir), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigDir, GlobalConfigFile), []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	writeGlobalConfig(t, "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.LibraryPath != "" {
		t.Errorf("LibraryPath = %q, want empty", cfg.LibraryPath)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	writeGlobalConfig(t, "library_path: /srv/albums\n")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.LibraryPath != "/srv/albums" {
		t.Errorf("LibraryPath = %q, want /srv/albums", cfg.LibraryPath)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	writeGlobalConfig(t, "library_path: [unterminated\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() expected error for invalid YAML")
	}
}

func TestGlobalConfigCache(t *testing.T) {
	writeGlobalConfig(t, "library_path: /first\n")

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	path := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), GlobalConfigDir, GlobalConfigFile)
	if err := os.WriteFile(path, []byte("library_path: /second\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	second, _ := LoadGlobalConfig()
	if second != first {
		t.Error("LoadGlobalConfig() did not return the cached config")
	}

	ResetGlobalConfigCache()
	third, _ := LoadGlobalConfig()
	if third.LibraryPath != "/second" {
		t.Errorf("LibraryPath after reset = %q, want /second", third.LibraryPath)
	}
}

func TestGetLibraryPath_EnvOverride(t *testing.T) {
	writeGlobalConfig(t, "library_path: /from/file\n")
	t.Setenv(LibraryEnvVar, "/from/env")

	if got := GetLibraryPath(); got != "/from/env" {
		t.Errorf("GetLibraryPath() = %q, want /from/env", got)
	}
}

func TestValidateLibraryPath(t *testing.T) {
	writeGlobalConfig(t, "")
	if _, err := ValidateLibraryPath(); !errors.Is(err, ErrLibraryPathNotConfigured) {
		t.Errorf("error = %v, want ErrLibraryPathNotConfigured", err)
	}

	t.Setenv(LibraryEnvVar, filepath.Join(t.TempDir(), "missing"))
	if _, err := ValidateLibraryPath(); !errors.Is(err, ErrLibraryPathNotExist) {
		t.Errorf("error = %v, want ErrLibraryPathNotExist", err)
	}
}

func TestResolveRoot_FallsBackToConfiguredLibrary(t *testing.T) {
	writeGlobalConfig(t, "")
	lib := t.TempDir()
	if err := os.Mkdir(filepath.Join(lib, AlbumsDir), 0755); err != nil {
		t.Fatalf("Failed to create .albums: %v", err)
	}
	t.Setenv(LibraryEnvVar, lib)

	got, err := ResolveRoot(t.TempDir())
	if err != nil {
		t.Fatalf("ResolveRoot() error = %v", err)
	}
	if got != lib {
		t.Errorf("ResolveRoot() = %q, want %q", got, lib)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	msg := HelpfulConfigMessage()

	for _, want := range []string{"No album library found", "/custom/config/alb/config.yml", "library_path", LibraryEnvVar} {
		if !strings.Contains(msg, want) {
			t.Errorf("HelpfulConfigMessage() missing %q", want)
		}
	}
}
