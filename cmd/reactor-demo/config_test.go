package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing file should not error: %v", err)
	}
	def := defaultDemoConfig()
	if cfg != def {
		t.Errorf("Expected defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	data := "alt_screen: false\nfps: 30\ntick_ms: 100\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AltScreen {
		t.Error("alt_screen override not applied")
	}
	if cfg.FPS != 30 || cfg.TickMs != 100 {
		t.Errorf("Numeric overrides not applied: %+v", cfg)
	}
	if cfg.LogFile != defaultDemoConfig().LogFile {
		t.Error("Unset field should keep default")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("fps: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("Malformed YAML should error")
	}
}

func TestLoadConfigClampsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("fps: -5\ntick_ms: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 60 || cfg.TickMs != 250 {
		t.Errorf("Invalid values should fall back to defaults: %+v", cfg)
	}
}
