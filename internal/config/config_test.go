package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"ONEFOCUS_DB", "ONEFOCUS_DEBUG", "ONEFOCUS_TIMEZONE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", "onefocus", "onefocus.db"); cfg.Database != want {
		t.Errorf("Database = %q, want %q", cfg.Database, want)
	}
	if cfg.Debug || cfg.Timezone != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"embedded"}, cfg.Sources()); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	content := "database: /data/focus.json\ndebug: true\ntimezone: Europe/Paris\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "/data/focus.json" || !cfg.Debug || cfg.Timezone != "Europe/Paris" {
		t.Errorf("file values not applied: %+v", cfg)
	}

	t.Setenv("ONEFOCUS_DB", "postgres://me@localhost/onefocus")
	t.Setenv("ONEFOCUS_DEBUG", "false")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database != "postgres://me@localhost/onefocus" || cfg.Debug {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"embedded", path, "env"}, cfg.Sources()); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("debug: [nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestInstallDefaultsAndSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", FileName)

	if err := InstallDefaults(path); err != nil {
		t.Fatalf("InstallDefaults failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if err := Save(path, &Config{Database: "/tmp/x.db", Timezone: "UTC"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := InstallDefaults(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database != "/tmp/x.db" || cfg.Timezone != "UTC" {
		t.Errorf("InstallDefaults overwrote saved config: %+v", cfg)
	}
}
