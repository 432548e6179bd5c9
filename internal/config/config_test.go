package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CacheDir != ".lumac_cache" {
		t.Errorf("got CacheDir %q, want %q", cfg.CacheDir, ".lumac_cache")
	}
	if !cfg.Color {
		t.Error("expected Color to default true")
	}
	if cfg.Verbose {
		t.Error("expected Verbose to default false")
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want Default()", cfg)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumac.yaml")
	if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Verbose {
		t.Error("expected verbose: true to be loaded")
	}
	if cfg.CacheDir != ".lumac_cache" {
		t.Errorf("expected the untouched field to keep its default, got %q", cfg.CacheDir)
	}
}

func TestLoadFullOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumac.yaml")
	content := "cache_dir: build/cache\nverbose: true\ncolor: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != "build/cache" || !cfg.Verbose || cfg.Color {
		t.Errorf("got %+v, want {build/cache true false}", cfg)
	}
}

func TestLoadMalformedYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumac.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
