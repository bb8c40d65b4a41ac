package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DrillCount != DefaultDrillCount {
		t.Errorf("DrillCount = %d, want %d", cfg.DrillCount, DefaultDrillCount)
	}
	if cfg.CaseCount != DefaultCaseCount {
		t.Errorf("CaseCount = %d, want %d", cfg.CaseCount, DefaultCaseCount)
	}
	if cfg.SnapshotKeep != DefaultSnapshotKeep {
		t.Errorf("SnapshotKeep = %d, want %d", cfg.SnapshotKeep, DefaultSnapshotKeep)
	}
	if cfg.DataDir != "" || cfg.DBPath != "" || len(cfg.Types) != 0 {
		t.Errorf("unexpected non-defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Chdir(t.TempDir())

	dir := filepath.Join(configHome, "bianzheng")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "drill_count: 20\ntypes:\n  - syndrome\n  - treatment\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DrillCount != 20 {
		t.Errorf("DrillCount = %d, want 20", cfg.DrillCount)
	}
	if len(cfg.Types) != 2 || cfg.Types[0] != "syndrome" {
		t.Errorf("Types = %v", cfg.Types)
	}
	// Unset keys keep their defaults.
	if cfg.CaseCount != DefaultCaseCount {
		t.Errorf("CaseCount = %d, want default", cfg.CaseCount)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Chdir(t.TempDir())

	dir := filepath.Join(configHome, "bianzheng")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("drill_count: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BIANZHENG_DRILL_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DrillCount != 7 {
		t.Errorf("DrillCount = %d, want env override 7", cfg.DrillCount)
	}
}

func TestLoadRejectsInvalidCounts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("BIANZHENG_DRILL_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Error("Load accepted drill_count 0")
	}
}
