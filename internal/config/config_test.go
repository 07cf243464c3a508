package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GeneratorModel != "gpt-4o-mini" {
		t.Errorf("GeneratorModel = %q, want gpt-4o-mini", cfg.GeneratorModel)
	}
	if cfg.GeneratorTimeoutSecs != 120 {
		t.Errorf("GeneratorTimeoutSecs = %d, want 120", cfg.GeneratorTimeoutSecs)
	}
	if cfg.WebBind != "127.0.0.1" {
		t.Errorf("WebBind = %q, want 127.0.0.1", cfg.WebBind)
	}
	if cfg.WebPort != 8642 {
		t.Errorf("WebPort = %d, want 8642", cfg.WebPort)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebPort != DefaultConfig().WebPort {
		t.Errorf("WebPort = %d, want default %d", cfg.WebPort, DefaultConfig().WebPort)
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `{"web_port": 9000, "generator_model": "gpt-4o", "generator_api_key": "file-key", "disabled_tools": ["story_imagine"]}`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.WebPort != 9000 {
		t.Errorf("WebPort = %d, want 9000", cfg.WebPort)
	}
	if cfg.GeneratorModel != "gpt-4o" {
		t.Errorf("GeneratorModel = %q, want gpt-4o", cfg.GeneratorModel)
	}
	if cfg.GeneratorAPIKey != "file-key" {
		t.Errorf("GeneratorAPIKey = %q, want file-key", cfg.GeneratorAPIKey)
	}
	// Unset fields keep their defaults.
	if cfg.WebBind != "127.0.0.1" {
		t.Errorf("WebBind = %q, want default", cfg.WebBind)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "story_imagine" {
		t.Errorf("DisabledTools = %v, want [story_imagine]", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load succeeded on invalid JSON, want error")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{WebPort: 9999, DBMaxOpenConns: 1}

	got := Merge(base, overlay)

	if got.WebPort != 9999 {
		t.Errorf("WebPort = %d, want overlay 9999", got.WebPort)
	}
	if got.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want overlay 1", got.DBMaxOpenConns)
	}
	if got.GeneratorModel != base.GeneratorModel {
		t.Errorf("GeneratorModel = %q, want base %q", got.GeneratorModel, base.GeneratorModel)
	}
}
