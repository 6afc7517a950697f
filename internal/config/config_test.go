package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tsawler/tablemd/tables"
)

// isolate points config lookup at an empty directory and clears
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"SEPARATOR", "HEADER_MODE", "EMPTY_HEADER_LABEL", "BLANK_LINES", "WORKERS", "LOG_LEVEL", "GLOB"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := DefaultConfig()
	if cfg.Separator != want.Separator || cfg.HeaderMode != want.HeaderMode ||
		cfg.BlankLines != want.BlankLines || cfg.Workers != want.Workers ||
		cfg.LogLevel != want.LogLevel || cfg.Glob != want.Glob {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty when no config file exists", cfg.File)
	}
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "tablemd", "tablemd.yaml"), `
separator: " / "
header_mode: any
empty_header_label: col_%d
blank_lines: false
workers: 3
log_level: debug
glob: "**/*.xhtml"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Separator != " / " {
		t.Errorf("Separator = %q, want %q", cfg.Separator, " / ")
	}
	if cfg.HeaderModeValue() != tables.HeaderAnyCell {
		t.Errorf("HeaderModeValue() = %v, want any", cfg.HeaderModeValue())
	}
	if cfg.EmptyHeaderLabel != "col_%d" {
		t.Errorf("EmptyHeaderLabel = %q", cfg.EmptyHeaderLabel)
	}
	if cfg.BlankLines {
		t.Error("BlankLines = true, want false")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.Glob != "**/*.xhtml" {
		t.Errorf("Glob = %q", cfg.Glob)
	}
	if filepath.Base(cfg.File) != "tablemd.yaml" {
		t.Errorf("File = %q, want the XDG config file", cfg.File)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "workers: 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Separator != tables.DefaultSeparator {
		t.Errorf("Separator = %q, want default", cfg.Separator)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() expected error for a missing explicit config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "tablemd.yaml"), "workers: 2\nheader_mode: all\n")
	t.Setenv("TABLEMD_WORKERS", "8")
	t.Setenv("TABLEMD_HEADER_MODE", "any")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8 from the environment", cfg.Workers)
	}
	if cfg.HeaderMode != "any" {
		t.Errorf("HeaderMode = %q, want any from the environment", cfg.HeaderMode)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "tablemd.yaml"), "workers: [unclosed\n")

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"any mode", func(c *Config) { c.HeaderMode = "any" }, false},
		{"bad mode", func(c *Config) { c.HeaderMode = "some" }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty glob", func(c *Config) { c.Glob = "" }, true},
		{"bad glob", func(c *Config) { c.Glob = "**/*.{html" }, true},
		{"label with verb", func(c *Config) { c.EmptyHeaderLabel = "col_%d" }, false},
		{"label with other verb", func(c *Config) { c.EmptyHeaderLabel = "col_%s" }, true},
		{"label with two verbs", func(c *Config) { c.EmptyHeaderLabel = "col_%d_%s" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() failed: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "tablemd") {
		t.Errorf("GetConfigDir() = %q", dir)
	}
}
